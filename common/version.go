package common

// ServerVersion is the current inboxd version
const ServerVersion = "1.2.0"

// ClientVersion is the current inbox CLI client version
const ClientVersion = "1.2.0"

// ProtocolVersion is the API protocol version, the server will
// reject any client with a different version
const ProtocolVersion = 1
