package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/dto"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/pkg/serverutils"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("session", c.CreateSession)
	h.Get("sessions", c.GetSessions)
	h.Get("session/:id/history", c.GetHistory)
	h.Delete("session/:id", c.DeleteSession)
	h.Post("session/:id/ask", c.Ask)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	res, err := c.chatService.GetSessions(ctx.Context(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chat sessions", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)
	sessionID := ctx.Params("id")

	res, err := c.chatService.GetHistory(ctx.Context(), userID, sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show chat history", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)
	sessionID := ctx.Params("id")

	if err := c.chatService.DeleteSession(ctx.Context(), userID, sessionID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete chat session", nil))
}

// Ask streams the answer as server-sent events: one "token" event per text
// fragment, then a final "result" event with the meta frame (sql, rows,
// intent, updated state).
func (c *chatController) Ask(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)
	sessionID := ctx.Params("id")

	var req dto.AskChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		meta, err := c.chatService.Ask(context.Background(), userID, sessionID, req.Question, func(token string) error {
			if err := writeEvent(w, "token", map[string]string{"text": token}); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			_ = writeEvent(w, "error", map[string]string{"message": err.Error()})
			_ = w.Flush()
			if meta == nil {
				return
			}
		}
		_ = writeEvent(w, "result", meta)
		_ = w.Flush()
	}))

	return nil
}

func writeEvent(w *bufio.Writer, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
