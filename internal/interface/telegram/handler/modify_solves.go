package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// MemberResolver maps a command argument (@username or numeric ID) to a
// member ID. Implemented by the roster.
type MemberResolver interface {
	Resolve(arg string) (tracker.MemberID, bool)
}

const modifySolvesUsage = "Usage: /modify_solves &lt;member&gt; &lt;±n&gt;\nExample: <code>/modify_solves @alice -2</code>"

// ModifySolvesRequest contains parameters for /modify_solves.
type ModifySolvesRequest struct {
	AdminID tracker.MemberID
	Args    string
}

// ModifySolvesHandler handles the admin /modify_solves command.
type ModifySolvesHandler struct {
	cmd       *command.ModifySolvesHandler
	resolver  MemberResolver
	presenter *presenter.MemberPresenter
}

// NewModifySolvesHandler creates the handler.
func NewModifySolvesHandler(cmd *command.ModifySolvesHandler, resolver MemberResolver, p *presenter.MemberPresenter) *ModifySolvesHandler {
	return &ModifySolvesHandler{cmd: cmd, resolver: resolver, presenter: p}
}

// Handle parses "<member> <delta>" and applies the adjustment.
func (h *ModifySolvesHandler) Handle(ctx context.Context, req ModifySolvesRequest) (string, error) {
	fields := strings.Fields(req.Args)
	if len(fields) != 2 {
		return modifySolvesUsage, nil
	}

	memberID, ok := h.resolver.Resolve(fields[0])
	if !ok {
		return "🤷 Unknown member: " + presenter.Escape(fields[0]), nil
	}

	delta, err := strconv.Atoi(fields[1])
	if err != nil {
		return modifySolvesUsage, nil
	}

	result, err := h.cmd.Handle(ctx, command.ModifySolvesCommand{
		MemberID: memberID,
		Delta:    delta,
		AdminID:  req.AdminID.String(),
	})
	if err != nil {
		if errors.Is(err, tracker.ErrZeroAdjustment) {
			return "🤔 A zero adjustment changes nothing.", nil
		}
		return "", err
	}

	return h.presenter.FormatSolvesAdjusted(presenter.Escape(fields[0]), result), nil
}
