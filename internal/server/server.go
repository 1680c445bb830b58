package server

// Server bundles the per-concern HTTP servers into one routable unit.
type Server struct {
	CatalogServer
	CartServer
	RequestServer
	AuthServer
	WalletServer
	PreferencesServer
}

func NewServer(
	catalogServer CatalogServer,
	cartServer CartServer,
	requestServer RequestServer,
	authServer AuthServer,
	walletServer WalletServer,
	preferencesServer PreferencesServer,
) Server {
	return Server{
		CatalogServer:     catalogServer,
		CartServer:        cartServer,
		RequestServer:     requestServer,
		AuthServer:        authServer,
		WalletServer:      walletServer,
		PreferencesServer: preferencesServer,
	}
}
