package game

import (
	"fmt"

	"github.com/robalobadob/kidgames/internal/random"
	"github.com/robalobadob/kidgames/internal/sched"
)

// Assets are the image lists injected into the games that draw pictures.
type Assets struct {
	Critters    []string
	MemoryGame  []string
	MemoryCards []string
}

// Kinds lists the playable games.
func Kinds() []Kind {
	return []Kind{KindBubblePop, KindFrogJump, KindCountCritters, KindMemoryGame, KindMemoryCards}
}

// New builds an idle session of the given kind with its preset config.
func New(id string, kind Kind, a Assets, src random.Source, s sched.Scheduler, e Emitter) (Session, error) {
	switch kind {
	case KindBubblePop:
		return quiz(id, BubblePop(), src, s, e)
	case KindFrogJump:
		return quiz(id, FrogJump(), src, s, e)
	case KindCountCritters:
		return quiz(id, CountCritters(a.Critters), src, s, e)
	case KindMemoryGame:
		return memory(id, MemoryGame(a.MemoryGame), src, s, e)
	case KindMemoryCards:
		return memory(id, MemoryCards(a.MemoryCards), src, s, e)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func quiz(id string, cfg QuizConfig, src random.Source, s sched.Scheduler, e Emitter) (Session, error) {
	q, err := NewQuiz(id, cfg, src, s, e)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func memory(id string, cfg MemoryConfig, src random.Source, s sched.Scheduler, e Emitter) (Session, error) {
	m, err := NewMemory(id, cfg, src, s, e)
	if err != nil {
		return nil, err
	}
	return m, nil
}
