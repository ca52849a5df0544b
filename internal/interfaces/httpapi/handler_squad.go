package httpapi

import (
	"net/http"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/fantasy"
)

func (h *Handler) decodeCandidate(r *http.Request) (fantasy.Candidate, error) {
	var req squadRequest
	if err := h.decodeRequest(r.Context(), r, &req); err != nil {
		return fantasy.Candidate{}, err
	}
	return fantasy.CandidateFromIDs(req.PlayerIDs)
}

func (h *Handler) ValidateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateSquad")
	defer span.End()

	candidate, err := h.decodeCandidate(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	validation, err := h.squads.Validate(ctx, candidate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, validationToDTO(validation, h.squads.Rules().Budget))
}

func (h *Handler) SubmitSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	candidate, err := h.decodeCandidate(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squads.SubmitSquad(ctx, principal.UserID, candidate, h.now())
	if err != nil {
		h.logger.WarnContext(ctx, "submit squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, squadToDTO(squad))
}

func (h *Handler) GetMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquad")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squads.CurrentSquad(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) GetMySquadLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquadLock")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	now := h.now()
	lock, _, err := h.squads.CurrentLock(ctx, principal.UserID, now)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockToDTO(lock, lock.SquadID != "", now))
}

func (h *Handler) ListMySquadHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMySquadHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squads, err := h.squads.History(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(squads, squadToDTO))
}

func (h *Handler) SuggestSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestSquad")
	defer span.End()

	budget, err := queryBudget(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if budget == 0 {
		budget = h.squads.Rules().Budget
	}

	suggestion, err := h.squads.Suggest(ctx, budget)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionToDTO(suggestion, budget))
}
