// Package discord hosts the bot's Discord gateway surface: slash commands,
// button interactions, and match announcements.
package discord

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"zoebot/internal/ai"
	"zoebot/internal/analysis"
	"zoebot/internal/champion"
	"zoebot/internal/db"
	"zoebot/internal/riot"
	"zoebot/internal/storage"
)

// analysisTimeout bounds one analyze flow end to end, LLM call included.
const analysisTimeout = 3 * time.Minute

// cachedAnalysis keeps a verdict around for button interactions.
type cachedAnalysis struct {
	players   []ai.PlayerAnalysis
	summary   *analysis.MatchSummary
	createdAt time.Time
}

// Bot is the Discord gateway surface.
type Bot struct {
	session *discordgo.Session
	riot    *riot.Client
	ai      *ai.Client
	store   *storage.TrackedPlayerStore
	archive *db.Archive // nil when Turso is not configured
	catalog *champion.Catalog

	cache   map[string]*cachedAnalysis // matchID -> verdict
	cacheMu sync.RWMutex

	commands []*discordgo.ApplicationCommand
}

// New creates the bot around an authenticated session.
func New(token string, riotClient *riot.Client, aiClient *ai.Client, store *storage.TrackedPlayerStore, archive *db.Archive, catalog *champion.Catalog) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		session: session,
		riot:    riotClient,
		ai:      aiClient,
		store:   store,
		archive: archive,
		catalog: catalog,
		cache:   make(map[string]*cachedAnalysis),
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start opens the gateway connection and registers slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	log.Println("Connected to Discord")

	if err := b.registerCommands(); err != nil {
		log.Printf("Register commands failed: %v", err)
	}

	go b.cleanupCache()

	return nil
}

// Stop persists the registry and closes the gateway connection.
func (b *Bot) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.store.Save(ctx); err != nil {
		log.Printf("Failed to save tracked players on shutdown: %v", err)
	}
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Bot ready: %s", event.User.Username)
}

func (b *Bot) registerCommands() error {
	riotIDOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "riot_id",
			Description: description,
			Required:    true,
		}
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check whether the bot is alive",
		},
		{
			Name:        "track",
			Description: "Track a player and announce their new matches",
			Options: []*discordgo.ApplicationCommandOption{
				riotIDOption("Player name (e.g. Faker#KR1)"),
			},
		},
		{
			Name:        "untrack",
			Description: "Stop tracking a player",
			Options: []*discordgo.ApplicationCommandOption{
				riotIDOption("Player to stop tracking"),
			},
		},
		{
			Name:        "list",
			Description: "List players tracked in this channel",
		},
		{
			Name:        "analyze",
			Description: "Analyze a player's most recent match",
			Options: []*discordgo.ApplicationCommandOption{
				riotIDOption("Player name (e.g. Faker#KR1)"),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Rank the players tracked in this channel",
		},
		{
			Name:        "history",
			Description: "Show a player's past analysis scores",
			Options: []*discordgo.ApplicationCommandOption{
				riotIDOption("Player name (e.g. Faker#KR1)"),
			},
		},
	}

	registered := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, cmd := range commands {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			log.Printf("Command %s failed: %v", cmd.Name, err)
			continue
		}
		registered = append(registered, created)
	}
	b.commands = registered
	log.Printf("Registered %d commands", len(registered))
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "ping":
			b.handlePing(s, i)
		case "track":
			b.handleTrack(s, i)
		case "untrack":
			b.handleUntrack(s, i)
		case "list":
			b.handleList(s, i)
		case "analyze":
			b.handleAnalyze(s, i)
		case "leaderboard":
			b.handleLeaderboard(s, i)
		case "history":
			b.handleHistory(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

// respond sends the initial interaction response.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// edit replaces the interaction response with a new embed.
func edit(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

// splitRiotID validates and splits a Name#Tag id. It responds with an error
// embed itself when the format is wrong.
func splitRiotID(s *discordgo.Session, i *discordgo.InteractionCreate, riotID string) (gameName, tagLine string, ok bool) {
	if !strings.Contains(riotID, "#") {
		respond(s, i, errorEmbed("Wrong format! Use `Name#Tag` (e.g. Faker#KR1).", ""), true)
		return "", "", false
	}
	parts := strings.SplitN(riotID, "#", 2)
	return parts[0], parts[1], true
}

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	respond(s, i, successEmbed(fmt.Sprintf("🏓 Pong! Latency: **%dms**", latency), "✅ Bot is running"), false)
}

func (b *Bot) handleTrack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	riotID := i.ApplicationCommandData().Options[0].StringValue()
	gameName, tagLine, ok := splitRiotID(s, i, riotID)
	if !ok {
		return
	}

	respond(s, i, searchingEmbed(riotID), false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		edit(s, i, errorEmbed(fmt.Sprintf("Player **%s** not found. Check the name and tag.", riotID), ""))
		return
	}

	if existing, tracked := b.store.Get(account.PUUID); tracked && existing.ChannelID == i.ChannelID {
		edit(s, i, warningEmbed(fmt.Sprintf("**%s** is already tracked in this channel.", riotID), ""))
		return
	}

	// Seed the baseline so tracking starts from the next match.
	var lastMatchID string
	if matches, err := b.riot.GetMatchIDs(ctx, account.PUUID, 1); err == nil && len(matches) > 0 {
		lastMatchID = matches[0]
	}

	b.store.Set(account.PUUID, &storage.TrackedPlayer{
		PUUID:       account.PUUID,
		LastMatchID: lastMatchID,
		ChannelID:   i.ChannelID,
		Name:        riotID,
	})
	if err := b.store.Save(ctx); err != nil {
		log.Printf("Failed to persist tracking for %s: %v", riotID, err)
	}

	embed := successEmbed(fmt.Sprintf("Added **%s** to the tracking list!\nNew matches will be announced here.", riotID), "✅ Tracking")
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: championIconURL("Zoe")}
	edit(s, i, embed)

	log.Printf("Tracked: %s", riotID)
}

func (b *Bot) handleUntrack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	riotID := i.ApplicationCommandData().Options[0].StringValue()
	gameName, tagLine, ok := splitRiotID(s, i, riotID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		respond(s, i, errorEmbed(fmt.Sprintf("**%s** is not in the tracking list.", riotID), ""), false)
		return
	}

	if _, tracked := b.store.Get(account.PUUID); !tracked {
		respond(s, i, errorEmbed(fmt.Sprintf("**%s** is not in the tracking list.", riotID), ""), false)
		return
	}

	b.store.Delete(account.PUUID)
	if err := b.store.Save(ctx); err != nil {
		log.Printf("Failed to persist untracking for %s: %v", riotID, err)
	}

	respond(s, i, successEmbed(fmt.Sprintf("Stopped tracking **%s**.", riotID), ""), false)
	log.Printf("Untracked: %s", riotID)
}

func (b *Bot) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var names []string
	for _, p := range b.store.GetByChannel(i.ChannelID) {
		names = append(names, p.Name)
	}
	respond(s, i, trackingListEmbed(names), false)
}

func (b *Bot) handleAnalyze(s *discordgo.Session, i *discordgo.InteractionCreate) {
	riotID := i.ApplicationCommandData().Options[0].StringValue()
	gameName, tagLine, ok := splitRiotID(s, i, riotID)
	if !ok {
		return
	}

	respond(s, i, searchingEmbed(riotID), false)

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		edit(s, i, errorEmbed(fmt.Sprintf("Player **%s** not found. Check the name and tag.", riotID), ""))
		return
	}

	matches, err := b.riot.GetMatchIDs(ctx, account.PUUID, 1)
	if err != nil || len(matches) == 0 {
		edit(s, i, errorEmbed("This player has no recent matches.", ""))
		return
	}
	matchID := matches[0]

	edit(s, i, analyzingEmbed(riotID, matchID))

	verdict, summary, err := b.analyzeMatch(ctx, matchID, account.PUUID)
	if err != nil {
		edit(s, i, errorEmbed(analysisErrorMessage(err), ""))
		return
	}

	embed := compactAnalysisEmbed(verdict.Players, summary)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "👤 Player details",
				Style:    discordgo.SecondaryButton,
				CustomID: "detail_" + matchID,
			},
			discordgo.Button{
				Label:    "🔗 Copy Match ID",
				Style:    discordgo.SecondaryButton,
				CustomID: "copy_" + matchID,
			},
		}},
	}

	s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
}

// analyzeMatch runs the full pipeline for one match: fetch, summarize, score,
// cache, archive.
func (b *Bot) analyzeMatch(ctx context.Context, matchID, puuid string) (*ai.AnalysisResult, *analysis.MatchSummary, error) {
	match, err := b.riot.GetMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching match: %w", err)
	}

	// Missing timeline degrades the analysis instead of failing it.
	timeline, err := b.riot.GetTimeline(ctx, matchID)
	if err != nil {
		log.Printf("No timeline for %s: %v", matchID, err)
		timeline = nil
	}

	summary, err := analysis.BuildSummary(match, timeline, puuid, b.catalog)
	if err != nil {
		return nil, nil, err
	}

	verdict, err := b.ai.AnalyzeMatch(ctx, summary)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring match: %w", err)
	}

	b.cacheMu.Lock()
	b.cache[matchID] = &cachedAnalysis{players: verdict.Players, summary: summary, createdAt: time.Now()}
	b.cacheMu.Unlock()

	puuidByName := make(map[string]string, len(match.Info.Participants))
	for _, p := range match.Info.Participants {
		puuidByName[p.RiotIDGameName] = p.PUUID
	}
	b.archiveVerdict(ctx, summary, verdict, puuidByName)

	return verdict, summary, nil
}

// archiveVerdict stores scored players in Turso when an archive is configured.
func (b *Bot) archiveVerdict(ctx context.Context, summary *analysis.MatchSummary, verdict *ai.AnalysisResult, puuidByName map[string]string) {
	if b.archive == nil {
		return
	}

	records := make([]db.AnalysisRecord, 0, len(verdict.Players))
	for _, p := range verdict.Players {
		records = append(records, db.AnalysisRecord{
			MatchID:     summary.MatchID,
			PUUID:       puuidByName[p.PlayerName],
			PlayerName:  p.PlayerName,
			Win:         summary.Win,
			Score:       p.Score,
			GameMode:    summary.GameMode,
			DurationMin: summary.GameDurationMinutes,
		})
	}

	if err := b.archive.RecordAnalyses(ctx, records); err != nil {
		log.Printf("Failed to archive analyses for %s: %v", summary.MatchID, err)
	}
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	players := b.store.GetByChannel(i.ChannelID)
	if len(players) == 0 {
		edit(s, i, warningEmbed("No players tracked in this channel yet.", "Use `/track` to add one."))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var infos []*riot.RankInfo

	for _, player := range players {
		if player.PUUID == "" {
			continue
		}
		wg.Add(1)
		go func(puuid, name string) {
			defer wg.Done()

			entries, err := b.riot.GetLeagueEntries(ctx, puuid)
			if err != nil {
				log.Printf("Failed to fetch rank for %s: %v", name, err)
				return
			}

			mu.Lock()
			infos = append(infos, riot.BuildRankInfo(puuid, name, entries))
			mu.Unlock()
		}(player.PUUID, player.Name)
	}
	wg.Wait()

	if len(infos) == 0 {
		edit(s, i, errorEmbed("Could not fetch rank data. Try again later.", ""))
		return
	}

	sort.Slice(infos, func(a, b int) bool {
		return infos[a].SortValue > infos[b].SortValue
	})

	channelName := "this channel"
	if channel, err := s.Channel(i.ChannelID); err == nil {
		channelName = "#" + channel.Name
	}

	edit(s, i, leaderboardEmbed(infos, channelName))
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	riotID := i.ApplicationCommandData().Options[0].StringValue()
	gameName, tagLine, ok := splitRiotID(s, i, riotID)
	if !ok {
		return
	}

	if b.archive == nil {
		respond(s, i, warningEmbed("The analysis archive is not configured.", ""), true)
		return
	}

	respond(s, i, searchingEmbed(riotID), false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		edit(s, i, errorEmbed(fmt.Sprintf("Player **%s** not found. Check the name and tag.", riotID), ""))
		return
	}

	records, err := b.archive.RecentByPlayer(ctx, account.PUUID, 10)
	if err != nil {
		log.Printf("Failed to query history for %s: %v", riotID, err)
		edit(s, i, errorEmbed("Could not read the analysis archive.", ""))
		return
	}

	avg, total, err := b.archive.AverageScore(ctx, account.PUUID)
	if err != nil {
		log.Printf("Failed to query average score for %s: %v", riotID, err)
	}

	edit(s, i, historyEmbed(riotID, records, avg, total))
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, "detail_"):
		b.handleDetailButton(s, i, strings.TrimPrefix(customID, "detail_"))

	case strings.HasPrefix(customID, "copy_"):
		matchID := strings.TrimPrefix(customID, "copy_")
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("```\n%s\n```", matchID),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
}

func (b *Bot) handleDetailButton(s *discordgo.Session, i *discordgo.InteractionCreate, matchID string) {
	b.cacheMu.RLock()
	cached := b.cache[matchID]
	b.cacheMu.RUnlock()

	if cached == nil {
		respond(s, i, errorEmbed("This analysis has expired. Run `/analyze` again.", ""), true)
		return
	}

	var embeds []*discordgo.MessageEmbed
	for _, p := range cached.players {
		embeds = append(embeds, playerDetailEmbed(p, cached.summary.Win))
	}
	// Discord caps a message at 10 embeds.
	if len(embeds) > 10 {
		embeds = embeds[:10]
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// AnnounceMatch is the poller callback: posts the notification and the full
// analysis into the player's channel.
func (b *Bot) AnnounceMatch(ctx context.Context, player *storage.TrackedPlayer, matchID string) {
	notice, err := b.session.ChannelMessageSendEmbed(player.ChannelID, newMatchEmbed([]string{player.Name}))
	if err != nil {
		log.Printf("Failed to announce match %s: %v", matchID, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	verdict, summary, err := b.analyzeMatch(ctx, matchID, player.PUUID)
	if err != nil {
		log.Printf("Failed to analyze announced match %s: %v", matchID, err)
		b.session.ChannelMessageEditEmbed(player.ChannelID, notice.ID, errorEmbed(analysisErrorMessage(err), ""))
		return
	}

	b.session.ChannelMessageEditEmbed(player.ChannelID, notice.ID, compactAnalysisEmbed(verdict.Players, summary))
}

// cleanupCache drops cached verdicts older than an hour.
func (b *Bot) cleanupCache() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		b.cacheMu.Lock()
		for matchID, cached := range b.cache {
			if cached.createdAt.Before(cutoff) {
				delete(b.cache, matchID)
			}
		}
		b.cacheMu.Unlock()
	}
}

// analysisErrorMessage maps pipeline errors to user-facing text.
func analysisErrorMessage(err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Sprintf("Analysis failed: %s", msg)
}
