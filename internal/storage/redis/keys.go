package redis

import "fmt"

// playerKey returns the Redis key holding a player's serialized record
func playerKey(prefix, name string) string {
	return fmt.Sprintf("%s:player:%s", prefix, name)
}

// playerOrderKey returns the Redis key for the LIST of player names in creation order
func playerOrderKey(prefix string) string {
	return fmt.Sprintf("%s:players", prefix)
}
