package http

import "github.com/gin-gonic/gin"

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/readyz", s.handleReady)
	s.engine.GET("/swagger/doc.json", s.handleSwaggerDoc)

	s.engine.GET("/latest", s.handleLatest)
	s.engine.GET("/history", s.handleHistory)

	var guards []gin.HandlerFunc
	if s.limiter != nil {
		guards = append(guards, rateLimitMiddleware(s.limiter))
	}
	if len(s.cfg.Ingest.APIKeys) > 0 {
		guards = append(guards, apiKeyMiddleware(s.cfg.Ingest.APIKeys, s.log))
	}
	ingest := s.engine.Group("", guards...)
	{
		ingest.GET("/ingest", s.handleIngest)
		ingest.POST("/ingest", s.handleIngest)
	}

	// Paths used by deployed sensor firmware and older app builds.
	legacy := s.engine.Group("")
	{
		ingestLegacy := legacy.Group("/iot_proj", guards...)
		ingestLegacy.GET("/connect.php", s.handleIngest)

		legacy.GET("/api/latest-water-level.php", s.handleLatest)
		legacy.GET("/api/water-level.php", s.handleHistory)
	}
}
