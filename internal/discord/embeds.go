package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"zoebot/internal/ai"
	"zoebot/internal/analysis"
	"zoebot/internal/db"
	"zoebot/internal/riot"
)

// Embed colors.
const (
	colorWin     = 0x00FF00
	colorLose    = 0xFF0000
	colorInfo    = 0x3498DB
	colorWarning = 0xFFFF00
	colorGold    = 0xF1C40F
)

// ddragonVersion pins the asset version for champion icons.
var ddragonVersion = "16.1.1"

// championIconURL returns the Data Dragon icon URL for a champion. A few
// champions use a different internal name than their display name.
func championIconURL(championName string) string {
	nameMapping := map[string]string{
		"Wukong":   "MonkeyKing",
		"Cho'Gath": "Chogath",
		"Vel'Koz":  "Velkoz",
		"Kha'Zix":  "Khazix",
		"Kai'Sa":   "Kaisa",
		"Bel'Veth": "Belveth",
		"K'Sante":  "KSante",
		"Rek'Sai":  "RekSai",
		"Kog'Maw":  "KogMaw",
	}

	cleanName := championName
	if mapped, ok := nameMapping[championName]; ok {
		cleanName = mapped
	} else {
		cleanName = strings.ReplaceAll(cleanName, " ", "")
		cleanName = strings.ReplaceAll(cleanName, "'", "")
	}

	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s.png", ddragonVersion, cleanName)
}

// positionEmoji returns the marker for a lane, accepting both raw role labels
// and the readable names the scoring model emits.
func positionEmoji(position string) string {
	positionEmojis := map[string]string{
		"TOP":     "🛡️",
		"JUNGLE":  "🌲",
		"MIDDLE":  "⚡",
		"BOTTOM":  "🏹",
		"UTILITY": "💚",
		"Top":     "🛡️",
		"Jungle":  "🌲",
		"Mid":     "⚡",
		"ADC":     "🏹",
		"Support": "💚",
	}

	if emoji, ok := positionEmojis[position]; ok {
		return emoji
	}
	return "🎮"
}

func successEmbed(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "✅ Done"
	}
	return &discordgo.MessageEmbed{Title: title, Description: message, Color: colorWin}
}

func errorEmbed(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "❌ Error"
	}
	return &discordgo.MessageEmbed{Title: title, Description: message, Color: colorLose}
}

func warningEmbed(message, title string) *discordgo.MessageEmbed {
	if title == "" {
		title = "⚠️ Warning"
	}
	return &discordgo.MessageEmbed{Title: title, Description: message, Color: colorWarning}
}

func searchingEmbed(riotID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔍 Searching...",
		Description: fmt.Sprintf("Looking up **%s**...", riotID),
		Color:       colorInfo,
	}
}

func analyzingEmbed(riotID, matchID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏳ Analyzing...",
		Description: fmt.Sprintf("Analyzing match `%s` for **%s**...", matchID, riotID),
		Color:       colorInfo,
	}
}

func trackingListEmbed(players []string) *discordgo.MessageEmbed {
	if len(players) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📋 Tracking list",
			Description: "No players tracked in this channel yet.\nUse `/track` to start.",
			Color:       colorInfo,
		}
	}

	var playerList strings.Builder
	for _, name := range players {
		playerList.WriteString(fmt.Sprintf("• **%s**\n", name))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 Tracking %d players", len(players)),
		Description: playerList.String(),
		Color:       colorInfo,
	}
}

func newMatchEmbed(playerNames []string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🚨 NEW MATCH",
		Description: fmt.Sprintf("%s just finished a match!\n⏳ Analyzing...", strings.Join(playerNames, ", ")),
		Color:       colorInfo,
	}
}

// compactAnalysisEmbed renders the whole team's verdict as one embed.
func compactAnalysisEmbed(players []ai.PlayerAnalysis, summary *analysis.MatchSummary) *discordgo.MessageEmbed {
	color := colorLose
	resultText := "💀 **DEFEAT**"
	if summary.Win {
		color = colorWin
		resultText = "🏆 **VICTORY**"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 MATCH ANALYSIS",
		Description: fmt.Sprintf("%s | ⏱️ %.1f min | 🎮 %s", resultText, summary.GameDurationMinutes, summary.GameMode),
		Color:       color,
		Fields:      make([]*discordgo.MessageEmbedField, 0, len(players)),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Match ID: %s", summary.MatchID),
		},
	}

	for _, p := range players {
		var lines []string
		if p.VsOpponent != "" {
			lines = append(lines, fmt.Sprintf("⚔️ %s", p.VsOpponent))
		}
		if p.Highlight != "" {
			lines = append(lines, fmt.Sprintf("💪 %s", p.Highlight))
		}
		if p.Weakness != "" {
			lines = append(lines, fmt.Sprintf("📉 %s", p.Weakness))
		}
		if p.Comment != "" {
			lines = append(lines, fmt.Sprintf("📝 _%s_", p.Comment))
		}

		fieldValue := "No data"
		if len(lines) > 0 {
			fieldValue = strings.Join(lines, "\n")
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s %s - %s (%s %s) - **%.1f/10**",
				ai.ScoreEmoji(p.Score), p.Champion, p.PlayerName, positionEmoji(p.Position), p.Position, p.Score),
			Value:  fieldValue,
			Inline: false,
		})
	}

	return embed
}

// playerDetailEmbed renders one player's full verdict.
func playerDetailEmbed(p ai.PlayerAnalysis, win bool) *discordgo.MessageEmbed {
	color := colorLose
	if win {
		color = colorWin
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s - %s", ai.ScoreEmoji(p.Score), p.Champion, p.PlayerName),
		Description: fmt.Sprintf("%s %s | **%.1f/10**", positionEmoji(p.Position), p.Position, p.Score),
		Color:       color,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: championIconURL(p.Champion),
		},
		Fields: make([]*discordgo.MessageEmbedField, 0),
	}

	if p.VsOpponent != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⚔️ Lane matchup", Value: p.VsOpponent,
		})
	}
	if p.RoleAnalysis != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🎭 Role", Value: p.RoleAnalysis, Inline: true,
		})
	}
	if p.Highlight != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "💪 Highlight", Value: p.Highlight, Inline: true,
		})
	}
	if p.Weakness != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "📉 Weakness", Value: p.Weakness,
		})
	}
	if p.Comment != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "📝 Verdict", Value: fmt.Sprintf("_%s_", p.Comment),
		})
	}
	if p.TimelineAnalysis != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "⏱️ Timeline", Value: p.TimelineAnalysis,
		})
	}

	return embed
}

// leaderboardEmbed renders tracked players sorted by rank.
func leaderboardEmbed(players []*riot.RankInfo, channelName string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 LEADERBOARD",
		Color: colorGold,
	}

	if len(players) == 0 {
		embed.Description = "No data"
		return embed
	}

	medals := []string{"🥇", "🥈", "🥉"}

	var sb strings.Builder
	for idx, p := range players {
		if idx >= 10 {
			break
		}

		marker := fmt.Sprintf("**%d.**", idx+1)
		if idx < len(medals) {
			marker = medals[idx]
		}

		rank := "Unranked"
		if p.Tier != "UNRANKED" && p.Tier != "" {
			rank = fmt.Sprintf("%s %s (%d LP)", p.Tier, p.Division, p.LP)
		}

		streak := ""
		if p.HotStreak {
			streak = " 🔥"
		}

		sb.WriteString(fmt.Sprintf("%s **%s** — %s%s\n", marker, p.Name, rank, streak))
		if p.TotalGames > 0 {
			sb.WriteString(fmt.Sprintf("    %dW %dL (%.0f%% WR)\n", p.Wins, p.Losses, p.WinRate))
		}
	}

	embed.Description = sb.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Tracked players in %s", channelName),
	}
	return embed
}

// historyEmbed renders a player's archived analyses.
func historyEmbed(name string, records []db.AnalysisRecord, avgScore float64, total int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📜 History for %s", name),
		Color: colorInfo,
	}

	if len(records) == 0 {
		embed.Description = "No archived analyses yet. Matches are archived each time they are analyzed."
		return embed
	}

	var sb strings.Builder
	for _, rec := range records {
		result := "💀"
		if rec.Win {
			result = "🏆"
		}
		sb.WriteString(fmt.Sprintf("%s `%s` — **%.1f/10** (%s, %.1f min)\n",
			result, rec.MatchID, rec.Score, rec.GameMode, rec.DurationMin))
	}

	embed.Description = sb.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Average score %.1f across %d archived matches", avgScore, total),
	}
	return embed
}
