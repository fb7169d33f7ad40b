// Command grantadmin bootstraps the first admin account and runs one-off data
// maintenance against Firestore.
//
//	grantadmin -email owner@example.com
//	grantadmin -uid abc123 -revoke
//	grantadmin -migrate-orders
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gamerverse/internal/adapter/repository"
	"gamerverse/internal/domain/entity"
	"gamerverse/internal/infrastructure/cache"
	"gamerverse/internal/infrastructure/firebase"
	"gamerverse/internal/usecase"
	"gamerverse/pkg/config"
	"gamerverse/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email of the account to change")
	uid := flag.String("uid", "", "uid of the account to change (instead of -email)")
	revoke := flag.Bool("revoke", false, "remove admin access instead of granting it")
	migrate := flag.Bool("migrate-orders", false, "rewrite legacy order status values")
	flag.Parse()

	if *email == "" && *uid == "" && !*migrate {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	clients, err := firebase.NewClients(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer clients.Close()

	if *migrate {
		orders := usecase.NewOrderUseCase(repository.NewFirestoreOrderRepository(clients.Firestore), nil, nil, nil)
		n, err := orders.NormalizeStatuses(ctx)
		if err != nil {
			log.Fatalf("Order status migration failed after %d updates: %v", n, err)
		}
		fmt.Printf("normalized %d order statuses\n", n)
	}

	if *email == "" && *uid == "" {
		return
	}

	authClient := firebase.NewFirebaseAuthClient(clients.Auth)
	target := *uid
	if target == "" {
		target, err = authClient.LookupUIDByEmail(ctx, *email)
		if err != nil {
			log.Fatalf("No account for %s: %v", *email, err)
		}
	}

	profiles := repository.NewFirestoreUserProfileRepository(clients.Firestore)
	if _, err := profiles.CreateIfAbsent(ctx, entity.NewUserProfile(&entity.Identity{UID: target, Email: *email})); err != nil {
		log.Fatalf("Failed to prepare profile for %s: %v", target, err)
	}

	// Servers sharing a Redis role cache see the change on their next request.
	var roleCache usecase.RoleCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		roleCache = cache.NewRedisRoleCache(redisClient)
	}

	roles := usecase.NewRoleUseCase(profiles, roleCache)
	users := usecase.NewUserUseCase(profiles, roles, authClient, nil)
	if err := users.AssignAdmin(ctx, target, !*revoke); err != nil {
		log.Fatalf("Failed to update admin flag for %s: %v", target, err)
	}

	fmt.Printf("user %s isAdmin=%t\n", target, !*revoke)
	if roleCache == nil {
		fmt.Println("servers caching roles in memory pick this up when the user's token refreshes")
	}
}
