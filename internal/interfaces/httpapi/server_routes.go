package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/top", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/players/popular", handler.ListPopularPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, fn)
	}

	mux.Handle("POST /v1/squads/validate", auth(handler.ValidateSquad))
	mux.Handle("POST /v1/squads", auth(handler.SubmitSquad))
	mux.Handle("GET /v1/squads/me", auth(handler.GetMySquad))
	mux.Handle("GET /v1/squads/me/lock", auth(handler.GetMySquadLock))
	mux.Handle("GET /v1/squads/me/history", auth(handler.ListMySquadHistory))
	mux.Handle("GET /v1/squads/suggest", auth(handler.SuggestSquad))
	mux.Handle("GET /v1/me/analytics", auth(handler.GetMyAnalytics))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(fn))
	}

	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("GET /v1/admin/matches", admin(handler.ListMatches))
	mux.Handle("POST /v1/admin/matches/{matchID}/result", admin(handler.RecordMatchResult))
	mux.Handle("POST /v1/admin/scoring/pass", admin(handler.RunScoringPass))
}
