/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gate

import (
	"crypto/sha1"
	"encoding/base64"
)

const keyGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// AcceptKey derives the Sec-WebSocket-Accept token for a client key.
func AcceptKey(key string) string {
	sum := sha1.Sum([]byte(key + keyGUID))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func upgradeResponse(key string) string {
	return "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + AcceptKey(key) + "\r\n" +
		"\r\n"
}
