// Package market holds the resolved market a recording session subscribes to.
//
// A Descriptor is produced once by slug resolution and never changes for the
// lifetime of the session that uses it. Outcome labels are positional: the
// label at index i names the outcome traded under AssetIDs[i].
package market
