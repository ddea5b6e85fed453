package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/progression"
)

// Logic core drill reward, paid into the guild channel
const (
	DrillRewardXP     = 100
	DrillRewardPoints = 25
)

// Feedback shown after a drill validation
const (
	DrillFailFeedback = "YOUR CODE DOING SOME ERROR PLEASE CHECK AND RETRY!"
	drillPassFeedback = "%s LOGIC VERIFIED. Sequence execution successful. +100 GUILD EXP."
)

// ErrValidatorBusy is returned while a drill submission is being validated
var ErrValidatorBusy = errors.New("drill validation already in flight")

// Drill is the logic core editor state
type Drill struct {
	Index       int              `json:"index"`
	ChallengeID string           `json:"challenge_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Language    catalog.Language `json:"language"`
	Code        string           `json:"code"`
}

// DrillResult is the outcome of a drill validation
type DrillResult struct {
	Verdict  ai.Verdict `json:"verdict"`
	Feedback string     `json:"feedback"`
	Rewarded bool       `json:"rewarded"`
}

func (s *Session) newDrill(idx int, lang catalog.Language) Drill {
	challenges := s.opts.Catalog.Challenges
	if len(challenges) == 0 {
		return Drill{Language: lang}
	}
	if idx < 0 || idx >= len(challenges) {
		idx = 0
	}
	ch := challenges[idx]
	return Drill{
		Index:       idx,
		ChallengeID: ch.ID,
		Title:       ch.Title,
		Description: ch.Description,
		Language:    lang,
		Code:        catalog.Boilerplate(lang, ch),
	}
}

// SelectDrill loads a challenge by position in the given language and resets the editor
func (s *Session) SelectDrill(idx int, language string) (Drill, error) {
	lang, err := catalog.ParseLanguage(language)
	if err != nil {
		return Drill{}, err
	}
	if idx < 0 || idx >= len(s.opts.Catalog.Challenges) {
		return Drill{}, fmt.Errorf("challenge index %d out of range", idx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Drill{}, ErrClosed
	}
	s.drill = s.newDrill(idx, lang)
	return s.drill, nil
}

// NextDrill moves to the following challenge, wrapping around.
// A closed session keeps its current drill.
func (s *Session) NextDrill() Drill {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.opts.Catalog.Challenges)
	if n > 0 && !s.closed {
		s.drill = s.newDrill((s.drill.Index+1)%n, s.drill.Language)
	}
	return s.drill
}

// SetDrillCode replaces the code in the editor. It is a no-op once the session is closed.
func (s *Session) SetDrillCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.drill.Code = code
}

// ValidateDrill submits the editor code to the validator. A pass pays the
// drill reward into the guild channel; a fail pays nothing. Blank code is
// ignored and returns a zero result. Only one submission runs at a time.
func (s *Session) ValidateDrill(ctx context.Context) (DrillResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return DrillResult{}, ErrClosed
	}
	if s.drillBusy {
		s.mu.Unlock()
		return DrillResult{}, ErrValidatorBusy
	}
	drill := s.drill
	if strings.TrimSpace(drill.Code) == "" {
		s.mu.Unlock()
		return DrillResult{}, nil
	}
	s.drillBusy = true
	s.mu.Unlock()

	verdict := s.mentor().Validate(ctx, drill.Description, drill.Code, string(drill.Language))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drillBusy = false
	if !verdict.Passed() {
		s.logger.Info("drill failed", zap.String("challenge", drill.ChallengeID), zap.String("reason", verdict.Reason))
		return DrillResult{Verdict: verdict, Feedback: DrillFailFeedback}, nil
	}
	if s.closed {
		return DrillResult{}, ErrClosed
	}
	s.apply(progression.GuildMissionReward(DrillRewardXP, DrillRewardPoints))
	s.guilds = s.opts.ExpPolicy.Credit(s.guilds, s.selectedGuild, DrillRewardXP)
	return DrillResult{
		Verdict:  verdict,
		Feedback: fmt.Sprintf(drillPassFeedback, drill.Language),
		Rewarded: true,
	}, nil
}
