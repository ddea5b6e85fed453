package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/guilds"
	"github.com/example/skillspace/internal/missions"
	"github.com/example/skillspace/internal/session"
)

type createGuildRequest struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

type textRequest struct {
	Text string `json:"text"`
}

type askRequest struct {
	Question string `json:"question"`
}

type toolRequest struct {
	Input string `json:"input"`
}

type selectDrillRequest struct {
	Index    int    `json:"index"`
	Language string `json:"language"`
}

type drillCodeRequest struct {
	Code string `json:"code"`
}

type startStrikeRequest struct {
	MissionID string `json:"mission_id"`
}

// changedResponse reports whether an operation changed anything
type changedResponse struct {
	Changed  bool             `json:"changed"`
	Snapshot session.Snapshot `json:"snapshot"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	respondJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(SessionFromContext(r.Context()).ID())
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	changed, err := sess.Enroll(chi.URLParam(r, "skillID"))
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, changedResponse{Changed: changed, Snapshot: sess.Snapshot()})
}

func (s *Server) handleClaimDaily(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	changed := sess.ClaimDaily(chi.URLParam(r, "missionID"))
	respondJSON(w, http.StatusOK, changedResponse{Changed: changed, Snapshot: sess.Snapshot()})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).Standings())
}

func (s *Server) handleCreateGuild(w http.ResponseWriter, r *http.Request) {
	var req createGuildRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := SessionFromContext(r.Context()).CreateGuild(req.Name, req.Tag)
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (s *Server) handleSelectGuild(w http.ResponseWriter, r *http.Request) {
	g, err := SessionFromContext(r.Context()).SelectGuild(chi.URLParam(r, "guildID"))
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleGuildMessages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).GuildMessages())
}

func (s *Server) handlePostGuildMessage(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	msg, ok, err := SessionFromContext(r.Context()).PostGuildMessage(req.Text)
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "text is required")
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleMentorMessages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).MentorMessages())
}

func (s *Server) handleAskMentor(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decodeBody(w, r, &req) {
		return
	}
	reply, ok, err := SessionFromContext(r.Context()).AskMentor(r.Context(), req.Question)
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "question is required")
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleDevTool(w http.ResponseWriter, r *http.Request) {
	tool, ok := ai.ParseTool(chi.URLParam(r, "tool"))
	if !ok {
		respondError(w, http.StatusNotFound, "tool_not_found", "unknown tool")
		return
	}
	var req toolRequest
	if !decodeBody(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).DevTool(r.Context(), tool, req.Input))
}

func (s *Server) handleGetDrill(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).Snapshot().Drill)
}

func (s *Server) handleSelectDrill(w http.ResponseWriter, r *http.Request) {
	var req selectDrillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := SessionFromContext(r.Context()).SelectDrill(req.Index, req.Language)
	if errors.Is(err, session.ErrClosed) {
		s.respondSessionError(w, err)
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (s *Server) handleSetDrillCode(w http.ResponseWriter, r *http.Request) {
	var req drillCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess := SessionFromContext(r.Context())
	sess.SetDrillCode(req.Code)
	respondJSON(w, http.StatusOK, sess.Snapshot().Drill)
}

func (s *Server) handleNextDrill(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).NextDrill())
}

func (s *Server) handleValidateDrill(w http.ResponseWriter, r *http.Request) {
	res, err := SessionFromContext(r.Context()).ValidateDrill(r.Context())
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetStrike(w http.ResponseWriter, r *http.Request) {
	snap := SessionFromContext(r.Context()).Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strike":      snap.Strike,
		"last_reward": snap.LastReward,
	})
}

func (s *Server) handleStartStrike(w http.ResponseWriter, r *http.Request) {
	var req startStrikeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	st, err := SessionFromContext(r.Context()).StartStrike(req.MissionID)
	if err != nil {
		s.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, st)
}

func (s *Server) handleAcknowledgeReward(w http.ResponseWriter, r *http.Request) {
	reward, ok := SessionFromContext(r.Context()).AcknowledgeReward()
	if !ok {
		respondError(w, http.StatusNotFound, "no_reward", "no pending strike reward")
		return
	}
	respondJSON(w, http.StatusOK, reward)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).Tasks())
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	task, ok := SessionFromContext(r.Context()).AddTask(req.Text)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "text is required")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	changed := sess.ToggleTask(chi.URLParam(r, "taskID"))
	respondJSON(w, http.StatusOK, changedResponse{Changed: changed, Snapshot: sess.Snapshot()})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	changed := sess.DeleteTask(chi.URLParam(r, "taskID"))
	respondJSON(w, http.StatusOK, changedResponse{Changed: changed, Snapshot: sess.Snapshot()})
}

// respondSessionError maps session and registry errors to HTTP statuses
func (s *Server) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownSkill):
		respondError(w, http.StatusNotFound, "skill_not_found", err.Error())
	case errors.Is(err, session.ErrUnknownMission):
		respondError(w, http.StatusNotFound, "mission_not_found", err.Error())
	case errors.Is(err, guilds.ErrUnknownGuild):
		respondError(w, http.StatusNotFound, "guild_not_found", err.Error())
	case errors.Is(err, guilds.ErrEmptyName), errors.Is(err, guilds.ErrInvalidTag):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, session.ErrNoGuild):
		respondError(w, http.StatusConflict, "no_guild", err.Error())
	case errors.Is(err, missions.ErrStrikeInProgress):
		respondError(w, http.StatusConflict, "strike_in_progress", err.Error())
	case errors.Is(err, session.ErrMentorBusy):
		respondError(w, http.StatusTooManyRequests, "mentor_busy", err.Error())
	case errors.Is(err, session.ErrValidatorBusy):
		respondError(w, http.StatusTooManyRequests, "validator_busy", err.Error())
	case errors.Is(err, session.ErrClosed):
		respondError(w, http.StatusGone, "session_closed", err.Error())
	default:
		s.logger.Error("session operation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "operation failed")
	}
}
