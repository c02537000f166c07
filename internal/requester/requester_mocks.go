package requester

//go:generate moq -pkg mocks -out ./mocks/peer_registry_mock.go . PeerRegistry
