package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/guilds"
	"github.com/example/skillspace/internal/missions"
	"github.com/example/skillspace/internal/session"
)

// Constants for callback data
const (
	callbackMainMenu = "main_menu"
	callbackStats    = "show_stats"
	callbackMissions = "show_missions"
	callbackSkills   = "show_skills"
	callbackGuilds   = "show_guilds"
	callbackWarRoom  = "show_war_room"
	callbackTasks    = "show_tasks"

	prefixClaim  = "claim:"
	prefixEnroll = "enroll:"
	prefixStrike = "strike:"
	prefixToggle = "toggle:"
	prefixDelete = "delete:"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start", "menu":
		return b.handleStart(chatID)
	case "help":
		return b.handleHelp(chatID)
	case "stats":
		return b.handleStats(chatID)
	case "missions":
		return b.handleMissions(chatID)
	case "claim":
		return b.handleClaim(chatID, args)
	case "skills":
		return b.handleSkills(chatID)
	case "enroll":
		return b.handleEnroll(chatID, args)
	case "guilds":
		return b.handleGuilds(chatID)
	case "newguild":
		return b.handleNewGuild(chatID, args)
	case "tasks":
		return b.handleTasks(chatID)
	case "addtask":
		return b.handleAddTask(chatID, args)
	case "ask":
		return b.handleAsk(ctx, chatID, args)
	case "tool":
		return b.handleTool(ctx, chatID, args)
	case "drill":
		return b.handleDrill(chatID, args)
	case "submit":
		return b.handleSubmit(ctx, chatID, args)
	case "strike":
		return b.handleStrike(ctx, chatID, args)
	default:
		return b.reply(chatID, "Unknown command. Use /help to see what I can do.", true)
	}
}

// HandleCallback handles inline keyboard presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil || callback.Message.Chat == nil {
		return fmt.Errorf("callback without message")
	}
	chatID := callback.Message.Chat.ID

	// Acknowledge the press so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}

	data := callback.Data
	switch {
	case data == callbackMainMenu:
		return b.reply(chatID, "Main Menu - choose an option:", true)
	case data == callbackStats:
		return b.handleStats(chatID)
	case data == callbackMissions:
		return b.handleMissions(chatID)
	case data == callbackSkills:
		return b.handleSkills(chatID)
	case data == callbackGuilds:
		return b.handleGuilds(chatID)
	case data == callbackWarRoom:
		return b.handleStrike(ctx, chatID, "")
	case data == callbackTasks:
		return b.handleTasks(chatID)
	case strings.HasPrefix(data, prefixClaim):
		return b.handleClaim(chatID, strings.TrimPrefix(data, prefixClaim))
	case strings.HasPrefix(data, prefixEnroll):
		return b.handleEnroll(chatID, strings.TrimPrefix(data, prefixEnroll))
	case strings.HasPrefix(data, prefixStrike):
		return b.handleStrike(ctx, chatID, strings.TrimPrefix(data, prefixStrike))
	case strings.HasPrefix(data, prefixToggle):
		b.sessionFor(chatID).ToggleTask(strings.TrimPrefix(data, prefixToggle))
		return b.handleTasks(chatID)
	case strings.HasPrefix(data, prefixDelete):
		b.sessionFor(chatID).DeleteTask(strings.TrimPrefix(data, prefixDelete))
		return b.handleTasks(chatID)
	}
	b.logger.Warn("unknown callback", zap.String("data", data))
	return nil
}

func (b *Bot) handleStart(chatID int64) error {
	b.sessionFor(chatID)
	text := "Welcome to SkillSpace! 🚀\n\n" +
		"Level up by claiming daily missions, enrolling in skill tracks, " +
		"running guild strikes and asking your AI mentor.\n\n" +
		"Use /help for the full command list."
	return b.reply(chatID, text, true)
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "📖 Commands\n\n" +
		"/stats - Your level, rank and streak\n" +
		"/missions - Daily missions\n" +
		"/claim <id> - Claim a daily mission\n" +
		"/skills - Skill tracks\n" +
		"/enroll <id> - Enroll in a track\n" +
		"/guilds - Guild standings\n" +
		"/newguild <name> <TAG> - Found a guild\n" +
		"/tasks - Study list\n" +
		"/addtask <text> - Add a study task\n" +
		"/ask <question> - Ask the AI mentor\n" +
		"/tool <terminal|testing|regex> <input> - Developer toolbox\n" +
		"/drill [n] [language] - Show a logic core drill\n" +
		"/submit <code> - Validate drill code\n" +
		"/strike [mission] - War room strikes"
	return b.reply(chatID, text, false)
}

func (b *Bot) handleStats(chatID int64) error {
	snap := b.sessionFor(chatID).Snapshot()
	st := snap.Stats
	enrolled := "none"
	if len(st.EnrolledSkillIDs) > 0 {
		enrolled = strings.Join(st.EnrolledSkillIDs, ", ")
	}
	text := fmt.Sprintf("📊 Your progress\n\n"+
		"Level: %d\nRank: %s\nXP: %d\nPoints: %d\nStreak: %d 🔥\nEnrolled: %s",
		st.Level, st.Rank, st.XP, st.Points, st.Streak, enrolled)
	return b.reply(chatID, text, true)
}

func (b *Bot) handleMissions(chatID int64) error {
	snap := b.sessionFor(chatID).Snapshot()
	var sb strings.Builder
	sb.WriteString("🎯 Daily missions\n\n")
	var buttons [][]MenuButton
	for _, m := range snap.DailyMissions {
		status := "⏳"
		if m.IsCompleted {
			status = "✅"
		}
		fmt.Fprintf(&sb, "%s %s %s (+%d XP)\n%s\n\n", status, m.Icon, m.Title, m.RewardXP, m.Description)
		if !m.IsCompleted {
			buttons = append(buttons, []MenuButton{{Text: "Claim " + m.Title, CallbackData: prefixClaim + m.ID}})
		}
	}
	buttons = append(buttons, []MenuButton{{Text: "⬅️ Menu", CallbackData: callbackMainMenu}})

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = createKeyboard(buttons)
	return b.sendMessage(msg)
}

func (b *Bot) handleClaim(chatID int64, id string) error {
	if id == "" {
		return b.reply(chatID, "Usage: /claim <mission id>", false)
	}
	sess := b.sessionFor(chatID)
	if !sess.ClaimDaily(id) {
		return b.reply(chatID, "That mission is unknown or already claimed.", false)
	}
	st := sess.Snapshot().Stats
	return b.reply(chatID, fmt.Sprintf("✅ Mission claimed! XP %d, points %d, streak %d 🔥", st.XP, st.Points, st.Streak), false)
}

func (b *Bot) handleSkills(chatID int64) error {
	progress := b.sessionFor(chatID).Progress()
	var sb strings.Builder
	sb.WriteString("📚 Skill tracks\n\n")
	var buttons [][]MenuButton
	for _, s := range b.catalog.Skills {
		mark := ""
		if progress.IsEnrolled(s.ID) {
			mark = " ✅"
		} else {
			buttons = append(buttons, []MenuButton{{Text: "Enroll in " + s.Name, CallbackData: prefixEnroll + s.ID}})
		}
		fmt.Fprintf(&sb, "%s %s [%s]%s\n%s\n\n", s.Icon, s.Name, s.Difficulty, mark, s.Description)
	}
	msg := tgbotapi.NewMessage(chatID, sb.String())
	if len(buttons) > 0 {
		msg.ReplyMarkup = createKeyboard(buttons)
	}
	return b.sendMessage(msg)
}

func (b *Bot) handleEnroll(chatID int64, id string) error {
	if id == "" {
		return b.reply(chatID, "Usage: /enroll <skill id>", false)
	}
	enrolled, err := b.sessionFor(chatID).Enroll(id)
	if errors.Is(err, session.ErrUnknownSkill) {
		return b.reply(chatID, "Unknown skill. See /skills.", false)
	}
	if err != nil {
		return err
	}
	if !enrolled {
		return b.reply(chatID, "You are already enrolled in that track.", false)
	}
	return b.reply(chatID, "🎓 Enrolled! +800 XP and +200 points.", false)
}

func (b *Bot) handleGuilds(chatID int64) error {
	var sb strings.Builder
	sb.WriteString("🛡️ Guild standings\n\n")
	for _, g := range b.sessionFor(chatID).Standings() {
		fmt.Fprintf(&sb, "#%d %s [%s] - %d members, %d EXP\n", g.Rank, g.Name, g.Tag, g.Members, g.Exp)
	}
	return b.reply(chatID, sb.String(), false)
}

func (b *Bot) handleNewGuild(chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return b.reply(chatID, "Usage: /newguild <name> <TAG>", false)
	}
	name := strings.Join(fields[:len(fields)-1], " ")
	tag := fields[len(fields)-1]

	g, err := b.sessionFor(chatID).CreateGuild(name, tag)
	switch {
	case errors.Is(err, guilds.ErrInvalidTag):
		return b.reply(chatID, fmt.Sprintf("Guild tags are 1 to %d characters.", guilds.MaxTagLength), false)
	case errors.Is(err, guilds.ErrEmptyName):
		return b.reply(chatID, "Your guild needs a name.", false)
	case err != nil:
		return err
	}
	return b.reply(chatID, fmt.Sprintf("🏰 %s [%s] founded! +1500 XP", g.Name, g.Tag), false)
}

func (b *Bot) handleTasks(chatID int64) error {
	tasks := b.sessionFor(chatID).Tasks()
	if len(tasks) == 0 {
		return b.reply(chatID, "Your study list is empty. Add one with /addtask <text>.", false)
	}
	var sb strings.Builder
	sb.WriteString("📝 Study list\n\n")
	var buttons [][]MenuButton
	for _, t := range tasks {
		box := "⬜"
		if t.IsCompleted {
			box = "✅"
		}
		fmt.Fprintf(&sb, "%s %s\n", box, t.Text)
		buttons = append(buttons, []MenuButton{
			{Text: box + " " + truncate(t.Text, 24), CallbackData: prefixToggle + t.ID},
			{Text: "🗑", CallbackData: prefixDelete + t.ID},
		})
	}
	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = createKeyboard(buttons)
	return b.sendMessage(msg)
}

func (b *Bot) handleAddTask(chatID int64, text string) error {
	if _, ok := b.sessionFor(chatID).AddTask(text); !ok {
		return b.reply(chatID, "Usage: /addtask <text>", false)
	}
	return b.handleTasks(chatID)
}

func (b *Bot) handleAsk(ctx context.Context, chatID int64, question string) error {
	reply, ok, err := b.sessionFor(chatID).AskMentor(ctx, question)
	switch {
	case errors.Is(err, session.ErrMentorBusy):
		return b.reply(chatID, "⏳ The mentor is still thinking about your last question.", false)
	case err != nil:
		return err
	case !ok:
		return b.reply(chatID, "Usage: /ask <question>", false)
	}
	return b.reply(chatID, reply.Text, false)
}

func (b *Bot) handleTool(ctx context.Context, chatID int64, args string) error {
	name, input, _ := strings.Cut(args, " ")
	tool, ok := ai.ParseTool(name)
	if !ok || strings.TrimSpace(input) == "" {
		return b.reply(chatID, "Usage: /tool <terminal|testing|regex> <input>", false)
	}
	return b.reply(chatID, b.sessionFor(chatID).DevTool(ctx, tool, input).Text, false)
}

func (b *Bot) handleDrill(chatID int64, args string) error {
	sess := b.sessionFor(chatID)
	drill := sess.Snapshot().Drill
	if args != "" {
		var (
			idx  int
			lang string
		)
		n, _ := fmt.Sscanf(args, "%d %s", &idx, &lang)
		if n == 0 {
			return b.reply(chatID, "Usage: /drill [number] [C++|PYTHON|JAVA|C]", false)
		}
		if n == 1 {
			lang = string(drill.Language)
		}
		d, err := sess.SelectDrill(idx-1, lang)
		if err != nil {
			return b.reply(chatID, err.Error(), false)
		}
		drill = d
	}
	text := fmt.Sprintf("🧩 %s (%s)\n%s\n\n%s\n\nSend your solution with /submit <code>",
		drill.Title, drill.Language, drill.Description, drill.Code)
	return b.reply(chatID, text, false)
}

func (b *Bot) handleSubmit(ctx context.Context, chatID int64, code string) error {
	if strings.TrimSpace(code) == "" {
		return b.reply(chatID, "Usage: /submit <code>", false)
	}
	sess := b.sessionFor(chatID)
	sess.SetDrillCode(code)
	res, err := sess.ValidateDrill(ctx)
	switch {
	case errors.Is(err, session.ErrValidatorBusy):
		return b.reply(chatID, "⏳ Your last submission is still being verified.", false)
	case err != nil:
		return err
	}
	text := res.Feedback
	if !res.Verdict.Passed() && res.Verdict.Reason != "" {
		text += "\n" + res.Verdict.Reason
	}
	return b.reply(chatID, text, false)
}

func (b *Bot) handleStrike(ctx context.Context, chatID int64, missionID string) error {
	if missionID == "" {
		var sb strings.Builder
		sb.WriteString("⚔️ War room\n\n")
		var buttons [][]MenuButton
		for _, m := range b.catalog.WarRoomMissions {
			fmt.Fprintf(&sb, "%s [%s] +%d XP, squad %d/%d\n%s\n\n",
				m.Title, m.Difficulty, m.Reward, m.CurrentSquad, m.SquadCapacity, m.Description)
			buttons = append(buttons, []MenuButton{{Text: "Strike: " + m.Title, CallbackData: prefixStrike + m.ID}})
		}
		msg := tgbotapi.NewMessage(chatID, sb.String())
		msg.ReplyMarkup = createKeyboard(buttons)
		return b.sendMessage(msg)
	}

	sess := b.sessionFor(chatID)
	events, unsubscribe := sess.Subscribe()
	st, err := sess.StartStrike(missionID)
	switch {
	case errors.Is(err, missions.ErrStrikeInProgress):
		unsubscribe()
		return b.reply(chatID, "A strike is already running. Hold the line!", false)
	case errors.Is(err, session.ErrUnknownMission):
		unsubscribe()
		return b.reply(chatID, "Unknown war room mission.", false)
	case err != nil:
		unsubscribe()
		return err
	}

	b.watchers.Add(1)
	go func() {
		defer b.watchers.Done()
		defer unsubscribe()
		b.watchStrike(ctx, chatID, events)
	}()
	return b.reply(chatID, fmt.Sprintf("🚀 Strike launched: %s", st.Mission.Title), false)
}

// watchStrike reports the strike reward once it lands
func (b *Bot) watchStrike(ctx context.Context, chatID int64, events <-chan session.StrikeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Reward == nil {
				continue
			}
			b.sessionFor(chatID).AcknowledgeReward()
			text := fmt.Sprintf("🏆 %s\n+%d XP, +%d points", ev.Strike.Phase, ev.Reward.XP, ev.Reward.Points)
			if err := b.reply(chatID, text, false); err != nil {
				b.logger.Error("failed to report strike", zap.Error(err))
			}
			return
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
