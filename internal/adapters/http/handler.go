package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Adityasingh-8858/warm-transfer/internal/app/agent"
	"github.com/Adityasingh-8858/warm-transfer/internal/app/transfer"
	"github.com/Adityasingh-8858/warm-transfer/internal/domain"
)

type Server struct {
	transfers *transfer.Service
	agents    *agent.Manager
	gateway   domain.RoomGateway
	synth     domain.SpeechSynthesizer
}

func NewServer(
	transfers *transfer.Service,
	agents *agent.Manager,
	gateway domain.RoomGateway,
	synth domain.SpeechSynthesizer,
) http.Handler {
	s := &Server{
		transfers: transfers,
		agents:    agents,
		gateway:   gateway,
		synth:     synth,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/get-token", s.handleGetToken)
	mux.HandleFunc("/rooms", s.handleListRooms)
	mux.HandleFunc("/participants", s.handleListParticipants)

	mux.HandleFunc("/initiate-transfer", s.handleInitiateTransfer)
	mux.HandleFunc("/complete-transfer", s.handleCompleteTransfer)

	// /transfers           → GET: filtered listing
	// /transfers/{id}      → GET: single record
	mux.HandleFunc("/transfers", s.handleListTransfers)
	mux.HandleFunc("/transfers/", s.handleTransferWithID)

	mux.HandleFunc("/synthesize", s.handleSynthesize)

	mux.HandleFunc("/agent/start", s.handleAgentStart)
	mux.HandleFunc("/agent/say", s.handleAgentSay)
	mux.HandleFunc("/agent/stop", s.handleAgentStop)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type roomResponse struct {
	Name            string `json:"name"`
	SID             string `json:"sid"`
	NumParticipants uint32 `json:"num_participants"`
	CreationTime    int64  `json:"creation_time"`
}

type listRoomsResponse struct {
	Rooms []roomResponse `json:"rooms"`
}

type participantResponse struct {
	Identity string `json:"identity"`
	Name     string `json:"name"`
	Metadata string `json:"metadata"`
}

type listParticipantsResponse struct {
	Room         string                `json:"room"`
	Participants []participantResponse `json:"participants"`
}

type initiateTransferRequest struct {
	CallContext    string `json:"call_context"`
	RoomName       string `json:"room_name,omitempty"`
	AgentAIdentity string `json:"agent_a_identity,omitempty"`
}

type initiateTransferResponse struct {
	Summary          string `json:"summary"`
	ID               string `json:"id"`
	BriefingRoomName string `json:"briefing_room_name,omitempty"`
}

type completeTransferRequest struct {
	OriginalRoomName string `json:"original_room_name"`
	AgentAIdentity   string `json:"agent_a_identity"`
	AgentBIdentity   string `json:"agent_b_identity"`
	TransferID       string `json:"transfer_id,omitempty"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type transferRecordResponse struct {
	ID          string    `json:"id"`
	RoomName    string    `json:"room_name"`
	AgentA      string    `json:"agent_a"`
	AgentB      *string   `json:"agent_b"`
	Summary     string    `json:"summary"`
	CallContext string    `json:"call_context"`
	CreatedAt   time.Time `json:"created_at"`
}

type listTransfersResponse struct {
	Transfers []transferRecordResponse `json:"transfers"`
}

type synthesizeRequest struct {
	Prompt string `json:"prompt"`
	Voice  string `json:"voice,omitempty"`
}

type agentStartRequest struct {
	RoomName string `json:"room_name"`
	Identity string `json:"identity,omitempty"`
}

type agentSayRequest struct {
	RoomName string `json:"room_name"`
	Text     string `json:"text"`
}

type agentStopRequest struct {
	RoomName string `json:"room_name"`
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Warm Transfer API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// ─────────────────────────────────────────────
// Gateway endpoints
// ─────────────────────────────────────────────

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	roomName := r.URL.Query().Get("room_name")
	identity := r.URL.Query().Get("identity")
	if roomName == "" || identity == "" {
		badRequest(w, "room_name and identity are required")
		return
	}

	token, err := s.gateway.AccessToken(roomName, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rooms, err := s.gateway.ListRooms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := listRoomsResponse{Rooms: make([]roomResponse, 0, len(rooms))}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, roomResponse{
			Name:            room.Name,
			SID:             room.SID,
			NumParticipants: room.NumParticipants,
			CreationTime:    room.CreationTime.Unix(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	roomName := r.URL.Query().Get("room_name")
	if roomName == "" {
		badRequest(w, "room_name is required")
		return
	}

	// Degrades to an empty list on provider failure inside the gateway.
	participants, err := s.gateway.ListParticipants(r.Context(), roomName)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := listParticipantsResponse{
		Room:         roomName,
		Participants: make([]participantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, participantResponse{
			Identity: p.Identity,
			Name:     p.Name,
			Metadata: p.Metadata,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ─────────────────────────────────────────────
// Transfer endpoints
// ─────────────────────────────────────────────

func (s *Server) handleInitiateTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req initiateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.transfers.Initiate(r.Context(), transfer.InitiateInput{
		CallContext:    req.CallContext,
		RoomName:       req.RoomName,
		AgentAIdentity: req.AgentAIdentity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, initiateTransferResponse{
		Summary:          out.Summary,
		ID:               string(out.ID),
		BriefingRoomName: out.BriefingRoomName,
	})
}

func (s *Server) handleCompleteTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req completeTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	res, err := s.transfers.Complete(r.Context(), transfer.CompleteInput{
		OriginalRoomName: req.OriginalRoomName,
		AgentAIdentity:   req.AgentAIdentity,
		AgentBIdentity:   req.AgentBIdentity,
		TransferID:       domain.TransferID(req.TransferID),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: res.Success,
		Message: res.Message,
	})
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	roomName := r.URL.Query().Get("room_name")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.transfers.ListTransfers(r.Context(), roomName, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := listTransfersResponse{Transfers: make([]transferRecordResponse, 0, len(recs))}
	for _, rec := range recs {
		resp.Transfers = append(resp.Transfers, toTransferResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/transfers/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	rec, err := s.transfers.GetTransfer(r.Context(), domain.TransferID(id))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransferResponse(rec))
}

// ─────────────────────────────────────────────
// Speech + agent endpoints
// ─────────────────────────────────────────────

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(w, "prompt is required")
		return
	}

	audio, err := s.synth.Synthesize(r.Context(), domain.SpeechRequest{
		Text:   req.Prompt,
		Voice:  req.Voice,
		Format: "wav",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", audio.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio.Data)
}

func (s *Server) handleAgentStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req agentStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.agents.Start(r.Context(), req.RoomName, req.Identity); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "agent started for room " + req.RoomName,
	})
}

func (s *Server) handleAgentSay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req agentSayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.agents.Say(r.Context(), req.RoomName, req.Text); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "agent spoke in room " + req.RoomName,
	})
}

func (s *Server) handleAgentStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req agentStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.agents.Stop(r.Context(), req.RoomName); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "agent stopped for room " + req.RoomName,
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toTransferResponse(rec *domain.TransferRecord) transferRecordResponse {
	return transferRecordResponse{
		ID:          string(rec.ID),
		RoomName:    rec.RoomName,
		AgentA:      rec.AgentA,
		AgentB:      rec.AgentB,
		Summary:     rec.Summary,
		CallContext: rec.CallContext,
		CreatedAt:   rec.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error kinds to status codes. The body always
// carries the short message, so a client can tell "nothing happened" from
// "something happened but completion is uncertain".
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNoActiveSession):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSummaryUnavailable), errors.Is(err, domain.ErrGatewayUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
