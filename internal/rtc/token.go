package rtc

import (
	"encoding/json"
	"fmt"

	"github.com/ZEGOCLOUD/zego_server_assistant/token/go/src/token04"
)

// Media-session UIDs handed to clients. The host always publishes as 1,
// viewers subscribe as 0.
const (
	HostUID   = 1
	ViewerUID = 0
)

// TokenIssuer issues a short-lived media-session credential for a channel.
// publish distinguishes the host (publisher) from a viewer (subscriber).
type TokenIssuer interface {
	IssueToken(channelName, userID string, publish bool) (string, error)
}

// roomPayload is the token04 room payload. See ZEGOCLOUD token04 docs.
type roomPayload struct {
	RoomID       string      `json:"RoomId"`
	Privilege    map[int]int `json:"Privilege"`
	StreamIDList []string    `json:"StreamIdList,omitempty"`
}

// ZegoIssuer signs tokens with a ZEGOCLOUD server secret.
type ZegoIssuer struct {
	AppID        uint32
	ServerSecret string
	TokenTTL     int64 // seconds
}

func NewZegoIssuer(appID uint32, serverSecret string, tokenTTL int64) *ZegoIssuer {
	return &ZegoIssuer{
		AppID:        appID,
		ServerSecret: serverSecret,
		TokenTTL:     tokenTTL,
	}
}

func (z *ZegoIssuer) IssueToken(channelName, userID string, publish bool) (string, error) {
	if z.AppID == 0 || z.ServerSecret == "" {
		return "", fmt.Errorf("rtc: app_id and server_secret required")
	}
	if len(z.ServerSecret) != 32 {
		return "", fmt.Errorf("rtc: server_secret must be 32 characters")
	}

	privilege := map[int]int{
		token04.PrivilegeKeyLogin:   token04.PrivilegeEnable,
		token04.PrivilegeKeyPublish: token04.PrivilegeDisable,
	}
	if publish {
		privilege[token04.PrivilegeKeyPublish] = token04.PrivilegeEnable
	}

	payload := roomPayload{
		RoomID:    channelName,
		Privilege: privilege,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("rtc: marshal payload: %w", err)
	}

	return token04.GenerateToken04(z.AppID, userID, z.ServerSecret, z.TokenTTL, string(payloadJSON))
}
