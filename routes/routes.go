package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-brackets/docs"
	"github.com/Dosada05/tournament-brackets/handlers"
	"github.com/Dosada05/tournament-brackets/middleware"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Metrics        http.Handler
}

func SetupRoutes(
	router *chi.Mux,
	opts Options,
	bracketHandler *handlers.BracketHandler,
	formatHandler *handlers.FormatHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	router.Get("/ws/bracket-groups/{groupID}", webSocketHandler.ServeWs)

	router.Get("/formats", formatHandler.GetAllFormats)
	router.Get("/formats/{bracketType}", formatHandler.GetFormat)
	router.Post("/brackets/preview", bracketHandler.Preview)

	router.Route("/bracket-groups", func(r chi.Router) {
		r.Get("/{groupID}", bracketHandler.GetBracket)
		r.Get("/{groupID}/layout", bracketHandler.GetLayout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.RequireBracketManager)

			r.Post("/batch", bracketHandler.CreateBatch)
			r.Post("/{groupID}/generate", bracketHandler.Generate)
			r.Post("/{groupID}/shuffle", bracketHandler.Shuffle)
			r.Put("/{groupID}/third-place", bracketHandler.SetThirdPlace)
			r.Post("/{groupID}/snapshot", bracketHandler.ExportSnapshot)
		})
	})
}
