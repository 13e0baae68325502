package mongo

type Option func(*Config)

// WithNetworkName attaches the container to network under the "mongo" alias.
func WithNetworkName(network string) Option {
	return func(c *Config) {
		c.NetworkName = network
	}
}

func WithContainerName(containerName string) Option {
	return func(c *Config) {
		c.ContainerName = containerName
	}
}

func WithDatabase(database string) Option {
	return func(c *Config) {
		c.Database = database
	}
}

// WithPartsCollection names the collection returned by Container.Parts.
func WithPartsCollection(collection string) Option {
	return func(c *Config) {
		c.PartsCollection = collection
	}
}

func WithAuth(username, password string) Option {
	return func(c *Config) {
		c.Username = username
		c.Password = password
	}
}

func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
