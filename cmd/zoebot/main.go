// ZoeBot watches tracked League of Legends players, analyzes their finished
// matches, and posts scored verdicts to Discord.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zoebot/internal/ai"
	"zoebot/internal/champion"
	"zoebot/internal/config"
	"zoebot/internal/db"
	"zoebot/internal/discord"
	"zoebot/internal/riot"
	"zoebot/internal/storage"
	"zoebot/internal/tracker"
	"zoebot/pkg/healthcheck"
)

func main() {
	healthFlag := flag.Bool("health", false, "Run health check and exit")
	flag.Parse()

	if *healthFlag {
		if err := runHealthCheck(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)
	log.Println("Starting ZoeBot...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config invalid: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Static champion data: local file first, Data Dragon CDN as fallback.
	catalog := champion.Load(ctx, cfg.ChampionDataPath)
	log.Printf("Champion catalog loaded: %d entries", catalog.Len())

	riotClient := riot.NewClient(cfg.RiotAPIKey,
		riot.WithBaseURLs(cfg.RiotBaseURLAccount, cfg.RiotBaseURLMatch, cfg.RiotBaseURLPlatform))
	aiClient := ai.NewClient(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)

	redisClient := storage.NewRedisClient(cfg.UpstashRedisRESTURL, cfg.UpstashRedisRESTToken)
	store := storage.NewTrackedPlayerStore(redisClient, cfg.RedisKeyTracked)
	if err := store.Load(ctx); err != nil {
		log.Printf("Failed to load tracked players: %v", err)
	}

	// Turso is optional; without it /history just reports the archive as off.
	var archive *db.Archive
	if cfg.TursoURL != "" {
		var err error
		archive, err = db.NewArchive(cfg.TursoURL, cfg.TursoAuthToken)
		if err != nil {
			log.Printf("Analysis archive unavailable: %v", err)
		} else {
			defer archive.Close()
			if err := archive.Init(ctx); err != nil {
				log.Printf("Failed to init archive schema: %v", err)
			}
		}
	}

	bot, err := discord.New(cfg.DiscordToken, riotClient, aiClient, store, archive, catalog)
	if err != nil {
		log.Fatalf("Bot error: %v", err)
	}

	healthServer := healthcheck.New(cfg.HealthAddr)
	go func() {
		if err := healthServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()

	if err := bot.Start(); err != nil {
		log.Fatalf("Start error: %v", err)
	}

	poller := tracker.NewPoller(riotClient, store, bot.AnnounceMatch,
		tracker.WithInterval(cfg.PollInterval))
	go poller.Run(ctx)

	log.Println("ZoeBot running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	healthServer.Stop(shutdownCtx)
	if err := bot.Stop(); err != nil {
		log.Printf("Bot stop error: %v", err)
	}

	log.Println("Stopped")
}

// runHealthCheck probes the local health endpoint, for Docker HEALTHCHECK.
func runHealthCheck() error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://localhost:8080/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %d", resp.StatusCode)
	}
	return nil
}
