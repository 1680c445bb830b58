package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"avenqor/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/api", func(r chi.Router) {
		// unauthorized zone
		r.Post("/contact", handler(s.postContact))

		r.Get("/courses", handler(s.getCourses))
		r.Get("/courses/{slug}", handler(s.getCourse))
		r.Get("/packs", handler(s.getPacks))
		r.Get("/i18n/{locale}", handler(s.getI18n))

		r.Post("/custom-course/quote", handler(s.postCustomCourseQuote))
		r.Post("/ai-strategy/quote", handler(s.postAIStrategyQuote))

		r.Put("/preferences", handler(s.putPreferences))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler(s.postRegister))
			r.Post("/login", handler(s.postLogin))
			r.Post("/logout", handler(s.postLogout))
			r.Post("/forgot-password", handler(s.postForgotPassword))
			r.Post("/reset-password", handler(s.postResetPassword))
		})

		// cart zone: needs a cart cookie, not a session
		r.Group(func(r chi.Router) {
			r.Use(s.CartServer.CartCookie)

			r.Get("/cart", handler(s.getCart))
			r.Post("/cart/items", handler(s.postCartItem))
			r.Delete("/cart/items/{slug}", handler(s.deleteCartItem))
			r.Delete("/cart", handler(s.deleteCart))
		})

		// authorized zone
		r.Group(func(r chi.Router) {
			r.Use(s.AuthServer.RequireSession)

			r.Get("/me", handler(s.getMe))
			r.Get("/wallet", handler(s.getWallet))
			r.Post("/wallet/topup", handler(s.postTopUp))

			r.Post("/custom-course", handler(s.postCustomCourse))
			r.Post("/ai-strategy", handler(s.postAIStrategy))
			r.Get("/requests", handler(s.getRequests))

			r.With(s.CartServer.CartCookie).Post("/cart/checkout", handler(s.postCheckout))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, translateError(err))
		}
	}
}
