package server

// Server объединяет HTTP-серверы, отвечающие за обработку конкретных сущностей.
// Сейчас есть только DashboardServer.
type Server struct {
	DashboardServer
}

func NewServer(
	dashboardServer DashboardServer,
) Server {
	return Server{
		DashboardServer: dashboardServer,
	}
}
