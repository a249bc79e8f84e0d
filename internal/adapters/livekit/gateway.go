package livekit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
	"github.com/Adityasingh-8858/warm-transfer/internal/observability"
)

const tokenTTL = 6 * time.Hour

// Gateway adapts the LiveKit control-plane API to domain.RoomGateway.
type Gateway struct {
	rooms     *lksdk.RoomServiceClient
	apiKey    string
	apiSecret string
}

// NewGateway creates a Gateway. url may be the ws:// / wss:// signalling URL;
// it is converted to the http form the room service expects.
func NewGateway(url, apiKey, apiSecret string) (*Gateway, error) {
	if url == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("livekit url, api key and api secret are required")
	}

	return &Gateway{
		rooms:     lksdk.NewRoomServiceClient(toHTTPURL(url), apiKey, apiSecret),
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}, nil
}

// AccessToken implements domain.RoomGateway. Tokens carry publish and
// subscribe grants; joining creates the room if it does not exist yet.
func (g *Gateway) AccessToken(roomName, identity string) (string, error) {
	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)

	at := auth.NewAccessToken(g.apiKey, g.apiSecret).
		SetIdentity(identity).
		SetName(identity).
		SetValidFor(tokenTTL).
		SetVideoGrant(grant)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("%w: signing access token: %v", domain.ErrGatewayUnavailable, err)
	}
	return token, nil
}

// CreateRoom implements domain.RoomGateway. LiveKit's CreateRoom is already
// idempotent: an existing name returns the existing room.
func (g *Gateway) CreateRoom(ctx context.Context, roomName string) error {
	_, err := g.rooms.CreateRoom(ctx, &livekit.CreateRoomRequest{
		Name: roomName,
	})
	if err != nil {
		return fmt.Errorf("%w: create room %q: %v", domain.ErrGatewayUnavailable, roomName, err)
	}
	return nil
}

func (g *Gateway) ListRooms(ctx context.Context) ([]domain.Room, error) {
	res, err := g.rooms.ListRooms(ctx, &livekit.ListRoomsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: list rooms: %v", domain.ErrGatewayUnavailable, err)
	}

	out := make([]domain.Room, 0, len(res.Rooms))
	for _, r := range res.Rooms {
		out = append(out, domain.Room{
			Name:            r.Name,
			SID:             r.Sid,
			NumParticipants: r.NumParticipants,
			CreationTime:    time.Unix(r.CreationTime, 0).UTC(),
		})
	}
	return out, nil
}

// ListParticipants implements domain.RoomGateway. Provider failures degrade
// to an empty listing: the result feeds UI context, not transfer state.
func (g *Gateway) ListParticipants(ctx context.Context, roomName string) ([]domain.Participant, error) {
	res, err := g.rooms.ListParticipants(ctx, &livekit.ListParticipantsRequest{
		Room: roomName,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("list participants failed",
			"room", roomName,
			"error", err)
		return []domain.Participant{}, nil
	}

	out := make([]domain.Participant, 0, len(res.Participants))
	for _, p := range res.Participants {
		out = append(out, domain.Participant{
			Identity: p.Identity,
			Name:     p.Name,
			Metadata: p.Metadata,
		})
	}
	return out, nil
}

// RemoveParticipant implements domain.RoomGateway. An identity that is not in
// the room is success: absence is the desired end state.
func (g *Gateway) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	_, err := g.rooms.RemoveParticipant(ctx, &livekit.RoomParticipantIdentity{
		Room:     roomName,
		Identity: identity,
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("%w: remove participant %q from %q: %v",
			domain.ErrGatewayUnavailable, identity, roomName, err)
	}
	return nil
}

// isNotFound matches the twirp not_found responses the room service returns
// for unknown rooms or participants.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

func toHTTPURL(url string) string {
	if strings.HasPrefix(url, "ws://") {
		return "http://" + strings.TrimPrefix(url, "ws://")
	}
	if strings.HasPrefix(url, "wss://") {
		return "https://" + strings.TrimPrefix(url, "wss://")
	}
	return url
}
