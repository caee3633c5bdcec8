/* main.go
 * The "main" method for running the watchability service. For details see `readme.md`
 * Usage: go run main.go -addr="<addr>" -serve="<true|false>" -test="<true|false>"
 * Authors: Courtwatch developers
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"courtwatch/api/api"
	"courtwatch/bot"
	"courtwatch/web"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()

	//Flags
	addrPtr := flag.String("addr", ":8080", "Listen address for the HTTP server, e.g. :8080")
	servePtr := flag.String("serve", "true", "Run the HTTP server alongside the bot: takes true or false as argument")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	dbNamePtr := flag.String("db", "courtwatch", "MongoDB database name")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}
	runServer, err := convertStrToBool(*servePtr)
	if err != nil {
		log.Fatal("Invalid \"serve\" flag. Should be true or false")
	}

	var discordToken string
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	} else {
		discordToken = os.Getenv("DISCORD_PROD_TOKEN")
	}

	apiPtr, err := api.NewAPI(*dbNamePtr, os.Getenv("MONGO_PROD_URI"))
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	if runServer {
		go func() {
			if err := web.Start(web.Config{Addr: *addrPtr, API: apiPtr}); err != nil {
				log.Fatalf("HTTP server failed: %v", err)
			}
		}()
	}

	//Init bot and run
	b, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	b.Run()
}
