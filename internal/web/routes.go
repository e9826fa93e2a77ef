package web

import (
	"github.com/rishiparsad75/pixland-face-service/internal/extract"
	"github.com/rishiparsad75/pixland-face-service/internal/recognize"
	"github.com/rishiparsad75/pixland-face-service/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	// The recognizer is heavyweight on the backend side, so it is built
	// lazily on the first extraction and shared for the process lifetime.
	recognizer := recognize.NewLazy(func() (recognize.Recognizer, error) {
		return recognize.NewDeepFaceProvider(
			s.config.Face.BackendURL,
			s.config.Face.Model,
			s.config.Face.Detector,
		)
	})
	extractor := extract.New(recognizer, s.config.Face.Model)

	healthHandler := handlers.NewHealthHandler(s.config)
	extractHandler := handlers.NewExtractHandler(extractor)
	compareHandler := handlers.NewCompareHandler(s.config)

	s.router.Get("/health", healthHandler.Health)
	s.router.Post("/extract", extractHandler.Extract)
	s.router.Post("/compare", compareHandler.Compare)
}
