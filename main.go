package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/VolkerFelix/EvolveMeBackened/controller"
	"github.com/VolkerFelix/EvolveMeBackened/db"
	"github.com/VolkerFelix/EvolveMeBackened/events"
	"github.com/VolkerFelix/EvolveMeBackened/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	evalFrequency := time.Hour
	if f := os.Getenv("EVALUATION_FREQUENCY"); f != "" {
		evalFrequency, err = time.ParseDuration(f)
		if err != nil {
			log.Fatalf("error parsing evaluation frequency: %v", err)
		}
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	// Game events are best-effort: without redis the league still runs, it
	// just doesn't notify anyone in real time.
	var publisher events.Publisher = events.NopPublisher{}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		publisher, err = events.NewRedisPublisher(redisAddr)
		if err != nil {
			log.Fatalf("error connecting to redis: %v", err)
		}
	} else {
		log.Printf("REDIS_ADDR not set, game events will not be published")
	}

	scoring := scoringFromEnv()

	ctrl, err := controller.New(clock, db, publisher, scoring)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup the job that starts due games and evaluates finished game days.
	wg.Add(1)
	go ctrl.RunPeriodicGameEvaluation(evalFrequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func scoringFromEnv() controller.ScoringConfig {
	scoring := controller.DefaultScoringConfig()
	if v := os.Getenv("LIVE_SCORE_PER_STAT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("error parsing LIVE_SCORE_PER_STAT: %v", err)
		}
		scoring.ScorePerStatPoint = int32(n)
	}
	if v := os.Getenv("LIVE_POWER_PER_STAT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("error parsing LIVE_POWER_PER_STAT: %v", err)
		}
		scoring.PowerPerStatPoint = int32(n)
	}
	return scoring
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
