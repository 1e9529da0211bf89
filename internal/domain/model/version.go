package model

// ServerVersion is reported in the connection handshake payload.
const ServerVersion = "1.0.0"
