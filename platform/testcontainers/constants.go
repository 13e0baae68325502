package testcontainers

// MongoDB defaults shared by container helpers and integration suites.
const (
	MongoContainerName = "mongo"
	MongoPort          = "27017"
	MongoImageName     = "mongo:8.2.3"

	MongoDatabase        = "catalog"
	MongoPartsCollection = "parts"

	MongoDatabaseKey = "MONGO_DATABASE"
	MongoUsernameKey = "MONGO_INITDB_ROOT_USERNAME"
	MongoPasswordKey = "MONGO_INITDB_ROOT_PASSWORD" //nolint:gosec
	MongoAuthDBKey   = "MONGO_AUTH_DB"
)
