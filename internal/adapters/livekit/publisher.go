package livekit

import (
	"context"
	"fmt"
	"sync"

	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

// Publisher joins rooms as a synthetic participant over the server SDK.
type Publisher struct {
	url       string
	apiKey    string
	apiSecret string
}

func NewPublisher(url, apiKey, apiSecret string) (*Publisher, error) {
	if url == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("livekit url, api key and api secret are required")
	}
	return &Publisher{url: url, apiKey: apiKey, apiSecret: apiSecret}, nil
}

// Join implements domain.RoomPublisher.
func (p *Publisher) Join(ctx context.Context, roomName, identity string) (domain.RoomConnection, error) {
	room, err := lksdk.ConnectToRoom(p.url, lksdk.ConnectInfo{
		APIKey:              p.apiKey,
		APISecret:           p.apiSecret,
		RoomName:            roomName,
		ParticipantIdentity: identity,
		ParticipantName:     identity,
	}, &lksdk.RoomCallback{})
	if err != nil {
		return nil, fmt.Errorf("%w: connect to room %q: %v", domain.ErrGatewayUnavailable, roomName, err)
	}

	observability.LoggerFromContext(ctx).Info("synthetic participant joined",
		"room", roomName,
		"identity", identity)

	return &roomConnection{room: room, roomName: roomName}, nil
}

type roomConnection struct {
	room     *lksdk.Room
	roomName string

	mu      sync.Mutex
	current *lksdk.LocalTrackPublication
}

// PublishAudioFile publishes the audio at path (an ogg/opus file) as a local
// track, replacing whatever the connection published before. The provider
// streams the file to the room at its native pacing.
func (c *roomConnection) PublishAudioFile(ctx context.Context, path string) error {
	track, err := lksdk.NewLocalFileTrack(path)
	if err != nil {
		return fmt.Errorf("opening audio file track: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		if err := c.room.LocalParticipant.UnpublishTrack(c.current.SID()); err != nil {
			observability.LoggerFromContext(ctx).Warn("unpublish previous track failed",
				"room", c.roomName,
				"error", err)
		}
		c.current = nil
	}

	pub, err := c.room.LocalParticipant.PublishTrack(track, &lksdk.TrackPublicationOptions{
		Name: "agent-tts",
	})
	if err != nil {
		return fmt.Errorf("%w: publish audio track to %q: %v", domain.ErrGatewayUnavailable, c.roomName, err)
	}
	c.current = pub
	return nil
}

func (c *roomConnection) Disconnect() {
	c.room.Disconnect()
}
