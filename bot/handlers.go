/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface.
 * The runtime wiring to *discordgo.Session lives in bot_runtime.go
 * Authors: Courtwatch developers
 */

package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"courtwatch/api/external"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

// maxListedGames caps how many games a single reply lists
const maxListedGames = 10

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$watch"):
		b.watchHandler(session, message)

	case startsWith(message.Content, "$thrill"):
		b.thrillHandler(session, message)

	case startsWith(message.Content, "$ingest"):
		b.ingestHandler(session, message)

	case startsWith(message.Content, "$review"):
		b.reviewHandler(session, message)

	case startsWith(message.Content, "$confirm"):
		b.confirmHandler(session, message)

	case startsWith(message.Content, "$override"):
		b.overrideHandler(session, message)
	}
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Courtwatch Bot v1.0\n")
	res.WriteString("`$watch [YYYY-MM-DD]`: ranks the day's games by watchability, most watchable first. Defaults to today\n")
	res.WriteString("`$thrill [YYYY-MM-DD]`: projects final scores for the day's scheduled games and ranks them by thrill rating\n")
	res.WriteString("`$ingest`: pulls the latest ratings and scoreboard from the providers\n")
	res.WriteString("`$review`: lists team name mappings awaiting confirmation\n")
	res.WriteString("`$confirm \"external name\" provider`: approves a pending mapping\n")
	res.WriteString("`$override \"external name\" provider team-id`: points a mapping at the right team. Names that contain two or more words need to be encased in \" (e.g. \"Saint Mary's\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// watchHandler handles the $watch command: the day's games ranked by watch score
func (b *Bot) watchHandler(session DiscordSession, message *discordgo.MessageCreate) {
	date, err := dateArgument(message.Content)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}

	ranked, err := b.APIPtr.RankGames(date)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occurred ranking games for %s", date))
		return
	}
	if len(ranked) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No games stored for %s", date))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Most watchable games for %s:\n", date))
	for i, entry := range ranked {
		if i == maxListedGames {
			break
		}

		matchup := fmt.Sprintf("%s at %s", entry.Game.AwayTeam.Name, entry.Game.HomeTeam.Name)
		if entry.Game.Live != nil {
			matchup = fmt.Sprintf("%s %d - %d %s", entry.Game.AwayTeam.Name, entry.Game.Live.AwayScore, entry.Game.Live.HomeScore, entry.Game.HomeTeam.Name)
		}
		res.WriteString(fmt.Sprintf("%d. %s: %d/100 — %s\n", i+1, matchup, entry.Score.Score, entry.Score.Explanation))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// thrillHandler handles the $thrill command: projected scores for scheduled games
func (b *Bot) thrillHandler(session DiscordSession, message *discordgo.MessageCreate) {
	date, err := dateArgument(message.Content)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, err.Error())
		return
	}

	digest, err := b.APIPtr.PregameDigest(date, external.CurrentSeason(time.Now()))
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occurred projecting games for %s", date))
		return
	}
	if len(digest) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No projectable games for %s", date))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Projected games for %s:\n", date))
	for i, entry := range digest {
		if i == maxListedGames {
			break
		}
		res.WriteString(fmt.Sprintf("%d. %s vs %s: projected %d-%d, thrill %d/100\n",
			i+1, entry.Game.HomeTeam.Name, entry.Game.AwayTeam.Name,
			entry.HomeProjected, entry.AwayProjected, entry.Thrill))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// ingestHandler handles the $ingest command: pulls ratings and the day's scoreboard
func (b *Bot) ingestHandler(session DiscordSession, message *discordgo.MessageCreate) {
	now := time.Now()
	season := external.CurrentSeason(now)
	today := now.Format("2006-01-02")

	var res strings.Builder
	reports, err := b.APIPtr.IngestAdvancedStats(context.Background(), season)
	if err != nil {
		log.Println(err)
		res.WriteString("Ratings ingest failed\n")
	} else {
		for _, report := range reports {
			res.WriteString(fmt.Sprintf("%s: %d matched, %d unmatched (%s)\n",
				report.Provider, report.Matched, report.Unmatched, report.Status))
		}
	}

	scoreboard, err := b.APIPtr.IngestScoreboard(context.Background(), today)
	if err != nil {
		log.Println(err)
		res.WriteString("Scoreboard ingest failed\n")
	} else {
		res.WriteString(fmt.Sprintf("scoreboard: %d games stored for %s\n", scoreboard.Games, scoreboard.Date))
	}

	session.ChannelMessageSend(message.ChannelID, res.String())
}

// reviewHandler handles the $review command: mappings awaiting confirmation
func (b *Bot) reviewHandler(session DiscordSession, message *discordgo.MessageCreate) {
	pending, err := b.APIPtr.PendingMappings()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred listing pending mappings")
		return
	}
	if len(pending) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No mappings awaiting review")
		return
	}

	var res strings.Builder
	res.WriteString("Mappings awaiting review:\n")
	for _, mapping := range pending {
		res.WriteString(fmt.Sprintf("- \"%s\" (%s) -> %s, confidence %.2f\n",
			mapping.ExternalName, mapping.Provider, mapping.TeamID, mapping.Confidence))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// confirmHandler handles the $confirm command
func (b *Bot) confirmHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArguments(message.Content)
	if len(args) != 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $confirm \"external name\" provider")
		return
	}
	externalName, provider := args[0], args[1]

	if err := b.APIPtr.ConfirmMapping(externalName, provider); err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not confirm \"%s\" (%s): %s", externalName, provider, err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Confirmed \"%s\" (%s)", externalName, provider))
}

// overrideHandler handles the $override command
func (b *Bot) overrideHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := commandArguments(message.Content)
	if len(args) != 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $override \"external name\" provider team-id")
		return
	}
	externalName, provider, teamID := args[0], args[1], args[2]

	if err := b.APIPtr.OverrideMapping(externalName, provider, teamID); err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not override \"%s\" (%s): %s", externalName, provider, err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Mapped \"%s\" (%s) to %s", externalName, provider, teamID))
}

// commandArguments splits a command message on spaces while keeping quoted team
// names together, and strips the quotes from each argument
func commandArguments(content string) []string {
	// splitter instead of strings.Fields so "Saint Mary's" stays one argument
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	parts, _ := spaceSplitter.Split(content)

	var args []string
	for _, part := range parts[1:] {
		if trimmed := unquote(strings.TrimSpace(part)); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	return args
}

// dateArgument extracts the optional YYYY-MM-DD argument of $watch and
// $thrill, defaulting to today
func dateArgument(content string) (string, error) {
	fields := strings.Fields(content)
	if len(fields) < 2 {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", fields[1]); err != nil {
		return "", fmt.Errorf("Dates must look like 2026-02-14, got \"%s\"", fields[1])
	}
	return fields[1], nil
}
