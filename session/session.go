package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kepler-games/aurora/battle-core/combat"
	"github.com/kepler-games/aurora/battle-core/ipc"
	"github.com/kepler-games/aurora/battle-core/stream"
)

// Session owns one orchestrator connection and the battle it is driving.
// A session holds at most one battle at a time; starting a new battle
// replaces a finished one.
type Session struct {
	Conn   *ipc.Connection
	Hub    *stream.Hub
	battle *combat.Battle
}

func New(conn *ipc.Connection, hub *stream.Hub) *Session {
	return &Session{Conn: conn, Hub: hub}
}

// HandleHello completes the handshake so the orchestrator knows the
// sidecar is ready.
func (s *Session) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}
	if hello.Version != ipc.ProtocolVersion {
		return errorEnvelope(fmt.Sprintf("unsupported protocol version %d, want %d",
			hello.Version, ipc.ProtocolVersion))
	}

	s.Conn.Client = hello.Client
	slog.Info("client identified", "client", hello.Client, "version", hello.Version)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleStartBattle sets up a battle from the orchestrator's force and
// doctrine snapshots and acks with the battle ID.
func (s *Session) HandleStartBattle(env ipc.Envelope) (*ipc.Envelope, error) {
	var msg ipc.StartBattleMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal start_battle: %w", err)
	}

	cfg := combat.BattleConfig{
		BattleID: msg.BattleID,
		Seed:     msg.Seed,
		Context:  msg.Context,
		Attacker: combat.SideConfig{
			Force:     msg.Attacker.Force,
			Doctrine:  msg.Attacker.Doctrine,
			Commander: msg.Attacker.Commander,
		},
		Defender: combat.SideConfig{
			Force:     msg.Defender.Force,
			Doctrine:  msg.Defender.Doctrine,
			Commander: msg.Defender.Commander,
		},
	}

	var (
		battle *combat.Battle
		err    error
	)
	switch msg.Arena {
	case "space":
		battle, err = combat.NewSpaceBattle(cfg)
	case "ground":
		battle, err = combat.NewGroundBattle(cfg)
	default:
		return errorEnvelope(fmt.Sprintf("unknown arena %q", msg.Arena))
	}
	if err != nil {
		return errorEnvelope(fmt.Sprintf("start battle: %v", err))
	}

	s.battle = battle
	slog.Info("battle started",
		"battle", battle.ID(),
		"arena", msg.Arena,
		"client", s.Conn.Client,
		"attacker", msg.Attacker.Force.Name,
		"defender", msg.Defender.Force.Name,
	)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok", BattleID: battle.ID()})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleIssueOrder applies a reactive command between rounds and acks
// with the disorder charge report.
func (s *Session) HandleIssueOrder(env ipc.Envelope) (*ipc.Envelope, error) {
	if s.battle == nil {
		return errorEnvelope("no battle in progress")
	}

	var msg ipc.IssueOrderMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal issue_order: %w", err)
	}

	role, err := parseSide(msg.Side)
	if err != nil {
		return errorEnvelope(err.Error())
	}

	report, err := s.battle.IssueOrder(role, msg.Order)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("issue order: %v", err))
	}

	ack, err := ipc.NewEnvelope(ipc.TypeOrderAck, ipc.OrderAckMessage{Report: report})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleAdvance resolves one round and streams it back. When the round
// finishes the battle, the result and after-action advice follow.
func (s *Session) HandleAdvance(env ipc.Envelope) (*ipc.Envelope, error) {
	if s.battle == nil {
		return errorEnvelope("no battle in progress")
	}
	if s.battle.Done() {
		return errorEnvelope("battle already complete")
	}

	round, done := s.battle.Advance()
	s.Hub.Broadcast(round)
	if err := s.Conn.Send(ipc.TypeRound, round); err != nil {
		return nil, err
	}
	if done {
		return nil, s.sendResult()
	}
	return nil, nil
}

// HandleRun drives the battle to completion, streaming every remaining
// round before the result.
func (s *Session) HandleRun(env ipc.Envelope) (*ipc.Envelope, error) {
	if s.battle == nil {
		return errorEnvelope("no battle in progress")
	}
	if s.battle.Done() {
		return errorEnvelope("battle already complete")
	}

	for {
		round, done := s.battle.Advance()
		s.Hub.Broadcast(round)
		if err := s.Conn.Send(ipc.TypeRound, round); err != nil {
			return nil, err
		}
		if done {
			return nil, s.sendResult()
		}
	}
}

func (s *Session) sendResult() error {
	result := *s.battle.Result()
	s.Hub.Broadcast(result)
	if err := s.Conn.Send(ipc.TypeBattleResult, result); err != nil {
		return err
	}

	for _, role := range []combat.Role{combat.RoleAttacker, combat.RoleDefender} {
		advice := Advise(role, result, s.battle.Rounds())
		if err := s.Conn.Send(ipc.TypeAdvice, advice); err != nil {
			return err
		}
	}
	return nil
}

func parseSide(side string) (combat.Role, error) {
	switch side {
	case "attacker":
		return combat.RoleAttacker, nil
	case "defender":
		return combat.RoleDefender, nil
	default:
		return 0, fmt.Errorf("unknown side %q", side)
	}
}

func errorEnvelope(msg string) (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeError, ipc.ErrorMessage{Message: msg})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
