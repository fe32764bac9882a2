package config

const (
	// DefaultDatabasePath is the default SQLite file of the embedded tier
	DefaultDatabasePath = "./data/mehgu-viewer.db"

	// DefaultNodeName is used for the node metadata record until renamed
	DefaultNodeName = "mehgu-node"
)
