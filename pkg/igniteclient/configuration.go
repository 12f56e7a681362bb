package igniteclient

// Configuration is the minimal, programmatic connection configuration:
// server address plus optional credentials. This mirrors the bare builder
// the protocol treats as an external collaborator — anything richer
// (logging, telemetry, metrics sub-configuration) belongs to
// pkg/configfile, which loads a superset of these same fields from a file
// or environment and produces a Configuration via ToClientConfiguration.
type Configuration struct {
	address  string
	username string
	password string
}

// NewConfiguration returns a Configuration pointed at the default local
// endpoint, matching the teacher's "sensible default, override what you
// need" builder convention.
func NewConfiguration() Configuration {
	return Configuration{address: "127.0.0.1:10800"}
}

// WithAddress sets the server's host:port.
func (c Configuration) WithAddress(address string) Configuration {
	c.address = address
	return c
}

// WithCredentials sets the username and password sent during the
// handshake. Per §9's resolved open question, a username with an empty
// password is encoded on the wire as "username present, password null",
// not as a padding byte.
func (c Configuration) WithCredentials(username, password string) Configuration {
	c.username = username
	c.password = password
	return c
}
