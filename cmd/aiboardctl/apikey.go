package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/impactlab/aiboard/pkg/http/auth/apikey"
)

var (
	keySecret string
	keyExpire time.Duration

	revokeKeyId       string
	revokeRedisAddr   string
	revokeRedisPass   string
	revokeRedisDB     int
	revokeRedisPrefix string
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage dashboard api keys",
}

var apikeyGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a signed api key",
	RunE: func(cmd *cobra.Command, args []string) error {
		if keySecret == "" {
			return fmt.Errorf("--secret is required and must match the server's http.auth.secretKey")
		}
		key, keyId, err := apikey.GenKey([]byte(keySecret), keyExpire)
		if err != nil {
			return fmt.Errorf("generate api key failed: %w", err)
		}
		fmt.Printf("keyId: %s\nkey:   %s\n", keyId, key)
		return nil
	},
}

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke an api key by its key id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if revokeKeyId == "" {
			return fmt.Errorf("--key-id is required")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     revokeRedisAddr,
			Password: revokeRedisPass,
			DB:       revokeRedisDB,
		})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// the marker only needs to outlive the key itself
		if err := client.Set(ctx, revokeRedisPrefix+"revoked:"+revokeKeyId, 1, keyExpire).Err(); err != nil {
			return fmt.Errorf("mark key revoked failed: %w", err)
		}
		fmt.Printf("key %s revoked\n", revokeKeyId)
		return nil
	},
}

func init() {
	apikeyGenCmd.Flags().StringVar(&keySecret, "secret", "", "signing secret, same as the server's http.auth.secretKey")
	apikeyGenCmd.Flags().DurationVar(&keyExpire, "expire", 365*24*time.Hour, "key lifetime, e.g. 8760h")

	apikeyRevokeCmd.Flags().StringVar(&revokeKeyId, "key-id", "", "key id printed at generation time")
	apikeyRevokeCmd.Flags().StringVar(&revokeRedisAddr, "redis-addr", "127.0.0.1:6379", "redis address of the server's revocation list")
	apikeyRevokeCmd.Flags().StringVar(&revokeRedisPass, "redis-password", "", "redis password")
	apikeyRevokeCmd.Flags().IntVar(&revokeRedisDB, "redis-db", 0, "redis database")
	apikeyRevokeCmd.Flags().StringVar(&revokeRedisPrefix, "redis-prefix", "aiboard:", "key prefix, same as the server's http.auth.redisKeyPrefix")

	apikeyCmd.AddCommand(apikeyGenCmd, apikeyRevokeCmd)
}
