package netsync

//go:generate moq -pkg mocks -out ./mocks/validator_mock.go . Validator
//go:generate moq -pkg mocks -out ./mocks/peer_manager_mock.go . PeerManager
//go:generate moq -pkg mocks -out ./mocks/header_store_mock.go . HeaderStore
