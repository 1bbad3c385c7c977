// Package stream implements the feed session component.
//
// The feed session:
//   - Maintains one WebSocket connection to the CLOB market channel
//   - Subscribes with the resolved market's token IDs
//   - Decodes book frames into best bid/ask/mid records
//   - Handles reconnection with exponential backoff
//   - Treats a failed record write as fatal rather than silently losing data
package stream
