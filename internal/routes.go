package internal

import (
	"net/http"

	"futsald/internal/controllers"
	"futsald/internal/providers"
	"futsald/internal/structures"
)

func InitRoutes(attendanceController *controllers.AttendanceController, identityController *controllers.IdentityController, boardController *controllers.BoardController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/identity/mint", http.HandlerFunc(identityController.Mint))
	routers.Post("/identity/register", http.HandlerFunc(identityController.Register))
	routers.Post("/identity/unregister", http.HandlerFunc(identityController.Unregister))
	routers.Get("/identity", http.HandlerFunc(identityController.Get))

	routers.Post("/attendance/status", http.HandlerFunc(attendanceController.SetStatus))
	routers.Get("/attendance", http.HandlerFunc(attendanceController.GetDay))
	routers.Get("/attendance/stats", http.HandlerFunc(attendanceController.GetStats))
	routers.Post("/attendance/stats/reset", http.HandlerFunc(attendanceController.ResetStats))
	routers.Post("/admin/reset", http.HandlerFunc(attendanceController.AdminReset))

	routers.Post("/board/messages", http.HandlerFunc(boardController.Post))
	routers.Get("/board/messages", http.HandlerFunc(boardController.List))
	routers.Post("/board/messages/edit", http.HandlerFunc(boardController.Edit))
	routers.Post("/board/messages/delete", http.HandlerFunc(boardController.Delete))
	routers.Post("/board/messages/like", http.HandlerFunc(boardController.Like))

	routers.Post("/board/pins", http.HandlerFunc(boardController.Pin))
	routers.Post("/board/pins/unpin", http.HandlerFunc(boardController.Unpin))
	routers.Get("/board/pins", http.HandlerFunc(boardController.Pins))

	return routers
}
