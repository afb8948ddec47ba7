package handler

import (
	"context"
	"net/http"
)

// CommandDispatcher executes a chat command and renders the reply.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, sender, username, name string, args []string) (string, error)
}

// CommandRequest is a chat command relayed by a platform bridge.
type CommandRequest struct {
	Sender   string   `json:"sender" validate:"required,playerid"`
	Username string   `json:"username" validate:"max=64"`
	Command  string   `json:"command" validate:"required,max=32"`
	Args     []string `json:"args" validate:"max=8,dive,max=128"`
}

// CommandResponse carries the text to show in the chat.
type CommandResponse struct {
	Reply string `json:"reply"`
}

// CommandHandler relays chat commands to the dispatcher
type CommandHandler struct {
	dispatcher CommandDispatcher
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(dispatcher CommandDispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

// Execute runs one chat command
// @Summary Execute a chat command
// @Description Runs a command such as "feed" or "sellpiglet 2" and returns the chat reply. Game rejections are part of the reply.
// @Tags command
// @Accept json
// @Produce json
// @Param request body CommandRequest true "Command"
// @Success 200 {object} CommandResponse
// @Failure 500 {object} ErrorResponse
// @Router /command [post]
func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Command", func(ctx context.Context, req CommandRequest) (*CommandResponse, error) {
		reply, err := h.dispatcher.Dispatch(ctx, req.Sender, req.Username, req.Command, req.Args)
		if err != nil {
			return nil, err
		}
		return &CommandResponse{Reply: reply}, nil
	})
}
