//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// CycleState is the stage a poll-and-announce cycle is in
// ENUM(idle,resolving_destination,fetching,filtering,delivering)
type CycleState string

// DeliveryMode decides when an entry is marked as seen
// ENUM(at_most_once,at_least_once)
type DeliveryMode string
