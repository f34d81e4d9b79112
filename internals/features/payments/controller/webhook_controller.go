package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"learnify_backend/internals/configs"
	"learnify_backend/internals/features/payments/service"
	helper "learnify_backend/internals/helpers"
)

type WebhookController struct {
	Webhooks *service.WebhookService
	Payments *service.PaymentService
}

func NewWebhookController(webhooks *service.WebhookService, payments *service.PaymentService) *WebhookController {
	return &WebhookController{Webhooks: webhooks, Payments: payments}
}

// GET /api/webhooks/membership
// Providers probe the endpoint with a GET before saving the URL.
func (ctrl *WebhookController) Ping(c *fiber.Ctx) error {
	return helper.Success(c, "Webhook endpoint is live", nil)
}

// POST /api/webhooks/membership
// Always 200 on handled events, actionable or not: a non-2xx makes the
// provider redeliver, and redelivering an unactionable event never helps.
// Unsigned or mis-signed deliveries are the one exception and get 401.
func (ctrl *WebhookController) HandleMembership(c *fiber.Ctx) error {
	if !service.ValidWebhookSignature(configs.WebhookSecret, c.Body(), c.Get("X-Membership-Signature")) {
		log.Println("[WARN] membership webhook with bad signature rejected")
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid webhook signature")
	}

	var ev service.MembershipEvent
	if err := c.BodyParser(&ev); err != nil {
		log.Println("[ERROR] membership webhook body parse:", err)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid webhook payload")
	}
	if ev.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing event type")
	}

	if err := ctrl.Webhooks.HandleMembershipEvent(ev); err != nil {
		log.Printf("[ERROR] membership webhook %s: %v", ev.Type, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process event")
	}
	return helper.Success(c, "Event processed", fiber.Map{"type": ev.Type})
}

// POST /api/payments/midtrans/notification
func (ctrl *WebhookController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification payload")
	}

	if err := ctrl.Payments.HandleMidtransNotification(body); err != nil {
		log.Println("[ERROR] midtrans notification:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process notification")
	}
	return helper.Success(c, "Notification processed", nil)
}
