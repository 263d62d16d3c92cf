package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/store-assistant-bot/internal/domain/constants"
	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

// TurnResult is the engine's answer for one incoming message.
type TurnResult struct {
	Reply         string
	OrderComplete bool
}

// DialogUseCase drives the order-taking dialogue: one inbound message fully
// produces one reply before the next is handled.
type DialogUseCase interface {
	// StartSession creates a session and returns its id with the greeting.
	StartSession(ctx context.Context) (string, string, error)

	// HandleTurn processes one user message. Returns
	// repository.ErrSessionNotFound for unknown or expired ids.
	HandleTurn(ctx context.Context, sessionID, userText string) (TurnResult, error)
}

type dialogUseCase struct {
	aiRepo   repository.AIRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	office   repository.OfficeRepository
	sessions repository.SessionRepository
	intent   IntentClassifier
	texts    Texts
}

// NewDialogUseCase wires the engine. office may be nil when no office-state
// sheet is configured; pickup then skips the opening-hours check.
func NewDialogUseCase(
	aiRepo repository.AIRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	office repository.OfficeRepository,
	sessions repository.SessionRepository,
	intent IntentClassifier,
	texts Texts,
) DialogUseCase {
	return &dialogUseCase{
		aiRepo:   aiRepo,
		products: products,
		orders:   orders,
		office:   office,
		sessions: sessions,
		intent:   intent,
		texts:    texts,
	}
}

var (
	rePhone    = regexp.MustCompile(`^(\+7|7|8)?(\d{10})$`)
	reTelegram = regexp.MustCompile(`^@?[A-Za-z0-9_]{5,32}$`)
)

// fillerWords are dropped from a details query as whole tokens only.
// RE2's \b is ASCII-only, so stripping via regexp would also cut these
// out of the middle of longer Cyrillic words.
var fillerWords = map[string]bool{
	"да":        true,
	"про":       true,
	"информация": true,
	"подробнее":  true,
	"хочу":      true,
	"модель":    true,
}

func stripFillerWords(text string) string {
	var kept []string
	for _, word := range strings.Fields(text) {
		if !fillerWords[strings.ToLower(word)] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

var restartKeywords = []string{"новый", "еще", "ещё", "другой"}

func (u *dialogUseCase) StartSession(ctx context.Context) (string, string, error) {
	session, err := u.sessions.Create(ctx)
	if err != nil {
		return "", "", fmt.Errorf("create session: %w", err)
	}
	return session.ID, u.texts.Greeting, nil
}

func (u *dialogUseCase) HandleTurn(ctx context.Context, sessionID, userText string) (TurnResult, error) {
	u.sessions.SweepExpired(ctx)

	session, err := u.sessions.Get(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}

	session.Lock()
	defer session.Unlock()

	session.Touch()
	userText = strings.TrimSpace(userText)
	session.Append(entity.RoleUser, userText)
	u.trimHistory(session)

	result := u.route(ctx, session, userText)

	session.Append(entity.RoleAssistant, result.Reply)
	return result, nil
}

// trimHistory applies the context rules after the user message has been
// appended and before a reply is generated.
func (u *dialogUseCase) trimHistory(s *entity.Session) {
	switch {
	case s.ResetContext:
		if last, ok := s.LastAssistant(); ok {
			s.History = []entity.Message{last}
		} else {
			s.History = nil
		}
		s.ResetContext = false
	case s.OrderConfirmed && !s.ContextCut:
		if len(s.History) > constants.ConfirmedContextKeep {
			s.History = s.History[len(s.History)-constants.ConfirmedContextKeep:]
		}
		s.ContextCut = true
	case len(s.History) > constants.MaxContext && !s.ContextCut:
		s.History = s.History[1:]
	}
}

func (u *dialogUseCase) route(ctx context.Context, s *entity.Session, input string) TurnResult {
	switch s.Phase {
	case entity.PhaseInit:
		return TurnResult{Reply: u.handleInit(ctx, s, input)}
	case entity.PhaseProductInfo:
		return TurnResult{Reply: u.handleProductInfo(ctx, s, input)}
	case entity.PhaseOrderConfirmation:
		return TurnResult{Reply: u.handleOrderConfirmation(s, input)}
	case entity.PhaseDeliverySelection:
		return TurnResult{Reply: u.handleDeliverySelection(ctx, s, input)}
	case entity.PhaseOfficeClosed:
		return TurnResult{Reply: u.handleOfficeClosed(s, input)}
	case entity.PhaseOrderForm:
		return u.handleOrderForm(ctx, s, input)
	case entity.PhaseComplete:
		return u.handleComplete(ctx, s, input)
	default:
		log.Printf("Неизвестная фаза диалога: %q (сессия %s)", s.Phase, s.ID)
		return TurnResult{Reply: "Произошла ошибка. Пожалуйста, попробуйте позже."}
	}
}

// --- init / informational ---

func (u *dialogUseCase) handleInit(ctx context.Context, s *entity.Session, input string) string {
	if u.intent.IsPurchaseIntent(ctx, input) {
		s.PurchaseIntent = true
		s.Phase = entity.PhaseOrderConfirmation

		if model, ok := u.modelFromContext(ctx, s, input); ok {
			s.Draft.Model = model
			return fmt.Sprintf("Хотите оформить заказ на %s? (Да/Нет)", model)
		}
		return "Отлично! Оформим заказ? (Да/Нет) Модель уточним при оформлении."
	}

	catalog := u.catalog(ctx)
	lower := strings.ToLower(input)

	// Follow-up questions about an already discussed model should not
	// re-trigger the details offer.
	isFollowUp := strings.Contains(lower, "подробнее") || strings.Contains(lower, "расскажи") ||
		strings.Contains(lower, "еще") || strings.Contains(lower, "ещё")

	prompt := fmt.Sprintf(`Пользователь спрашивает: %s
Доступные товары: %s
Предыдущий диалог: %s

Ответь как живой консультант магазина:
1. Веди себя реалистично как человек
2. Добавляй эмодзи где уместно
3. Сохраняй легкую эмоциональную окраску
4. Держи ответ в 1-2 предложения
5. Никогда не упоминай что ты ИИ
6. Твоя цель продать айфон
7. Не предлагай дополнительные аксессуары`,
		input, catalogJSON(catalog), historyJSON(lastMessages(s.History, 2)))

	reply := u.aiReply(ctx, prompt)

	mentionsCategory := strings.Contains(lower, "iphone") || strings.Contains(lower, "айфон")
	declines := strings.Contains(lower, "нет") || strings.Contains(lower, "не надо")

	if mentionsCategory && !isFollowUp && !declines {
		s.Phase = entity.PhaseProductInfo
		s.AskedForDetails = true
		return reply + "\n\nХотите получить полную информацию по конкретной модели?"
	}

	s.Phase = entity.PhaseInit
	return reply
}

// modelFromContext extracts a model mention from the current message and
// the recent history, snapped onto an in-stock catalog name when possible.
func (u *dialogUseCase) modelFromContext(ctx context.Context, s *entity.Session, input string) (string, bool) {
	combined := input
	for _, msg := range lastMessages(s.History, 4) {
		if msg.Role == entity.RoleUser && msg.Text != input {
			combined += "\n" + msg.Text
		}
	}

	mentions := ExtractModelMentions(combined)
	if len(mentions) == 0 {
		return "", false
	}

	catalog := u.catalog(ctx)
	if matched := FindMatches(catalog, MatchQuery{Model: mentions[0]}); len(matched) > 0 {
		return matched[0].Model, true
	}
	return mentions[0], true
}

func (u *dialogUseCase) handleProductInfo(ctx context.Context, s *entity.Session, input string) string {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "нет") || strings.Contains(lower, "не надо") {
		s.Phase = entity.PhaseInit
		s.AskedForDetails = false
		return "Хорошо, чем еще могу помочь?"
	}

	modelQuery := ""
	if mentions := ExtractModelMentions(input); len(mentions) > 0 {
		modelQuery = mentions[0]
	} else {
		modelQuery = stripFillerWords(input)
	}

	catalog := u.catalog(ctx)
	prompt := fmt.Sprintf(`Пользователь хочет подробности о: %s
Доступные товары: %s
О магазине: %s

Ответь как эксперт-продажник:
1. Начни с позитивного отклика
2. Используй сравнения
3. Добавь личное мнение
4. Заверши мягким призывом к действию
5. Максимум 3 предложения
6. Не предлагай дополнительные аксессуары`,
		modelQuery, catalogJSON(catalog), u.texts.Details)

	reply := u.aiReply(ctx, prompt)

	if !strings.Contains(reply, "Хотите оформить заказ") && !s.AskedForDetails {
		reply += "\n\nХотите оформить заказ на эту модель?"
		s.AskedForDetails = true
	}

	s.Phase = entity.PhaseDeliverySelection
	return reply
}

// --- order confirmation / delivery ---

func (u *dialogUseCase) handleOrderConfirmation(s *entity.Session, input string) string {
	switch {
	case isYes(input):
		s.Phase = entity.PhaseDeliverySelection
		return u.texts.DeliveryOptions
	case isNo(input):
		s.Phase = entity.PhaseInit
		s.PurchaseIntent = false
		s.Draft.Model = ""
		return "Хорошо, чем еще могу помочь?"
	default:
		return "Пожалуйста, ответьте Да или Нет:"
	}
}

func matchDeliveryOption(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "самовывоз") || strings.Contains(lower, "офис") || strings.Contains(lower, "заберу"):
		return "Самовывоз"
	case strings.Contains(lower, "курьер") || strings.Contains(lower, "доставк") || strings.Contains(lower, "привез"):
		return "Курьерская доставка"
	default:
		return ""
	}
}

func (u *dialogUseCase) handleDeliverySelection(ctx context.Context, s *entity.Session, input string) string {
	if strings.Contains(strings.ToLower(input), "нет") {
		s.Phase = entity.PhaseInit
		return "Хорошо, чем еще могу помочь?"
	}

	delivery := matchDeliveryOption(input)
	if delivery == "" {
		return "Пожалуйста, выберите способ доставки:\n" + u.texts.DeliveryOptions
	}

	s.DeliveryMethod = delivery

	if delivery == "Самовывоз" && u.office != nil {
		status, err := u.office.Status(ctx)
		if err != nil {
			// Unknown office state must not block the order.
			log.Printf("Ошибка чтения статуса офиса: %v", err)
		} else if statusLower := strings.ToLower(status); statusLower == "закрыт" || statusLower == "closed" {
			s.Phase = entity.PhaseOfficeClosed
			return u.texts.OfficeClosed
		}
	}

	s.Phase = entity.PhaseOrderForm
	s.Step = entity.StepFullName
	return "Пожалуйста, укажите ваше полное имя (Фамилия Имя Отчество):"
}

func (u *dialogUseCase) handleOfficeClosed(s *entity.Session, input string) string {
	if strings.Contains(strings.ToLower(input), "да") {
		s.DeliveryMethod = "Курьерская доставка"
		s.Phase = entity.PhaseOrderForm
		s.Step = entity.StepFullName
		return "Пожалуйста, укажите ваше полное имя (Фамилия Имя Отчество):"
	}
	s.Phase = entity.PhaseComplete
	return "Хорошо, тогда обращайтесь, когда офис будет открыт."
}

// --- order form ---

func (u *dialogUseCase) handleOrderForm(ctx context.Context, s *entity.Session, input string) TurnResult {
	switch s.Step {
	case entity.StepFullName:
		return TurnResult{Reply: u.stepFullName(s, input)}
	case entity.StepContact:
		return TurnResult{Reply: u.stepContact(s, input)}
	case entity.StepModel:
		return TurnResult{Reply: u.stepModel(ctx, s, input)}
	case entity.StepModelConfirmation:
		return TurnResult{Reply: u.stepModelConfirmation(ctx, s, input)}
	case entity.StepOutOfStock:
		return TurnResult{Reply: u.stepOutOfStock(s, input)}
	case entity.StepStorage:
		return TurnResult{Reply: u.stepStorage(ctx, s, input)}
	case entity.StepColor:
		return TurnResult{Reply: u.stepColor(ctx, s, input)}
	case entity.StepCharger:
		return TurnResult{Reply: u.stepCharger(s, input)}
	case entity.StepConfirmation:
		return u.stepConfirmation(ctx, s, input)
	default:
		log.Printf("Неизвестный шаг оформления: %q (сессия %s)", s.Step, s.ID)
		return TurnResult{Reply: "Произошла ошибка. Пожалуйста, попробуйте позже."}
	}
}

func (u *dialogUseCase) stepFullName(s *entity.Session, input string) string {
	parts := strings.Fields(input)
	if len(parts) < 2 {
		return "Пожалуйста, укажите ваше полное имя (минимум Фамилия и Имя):"
	}

	for i, part := range parts {
		parts[i] = titleWords(strings.ToLower(part))
	}
	s.Draft.FullName = strings.Join(parts, " ")
	s.Step = entity.StepContact
	return "Укажите ваш телефон (в формате +79991234567) или Telegram username (в формате @username):"
}

func (u *dialogUseCase) stepContact(s *entity.Session, input string) string {
	if m := rePhone.FindStringSubmatch(input); m != nil {
		s.Draft.Contact = "+7" + m[2]
	} else if reTelegram.MatchString(input) {
		contact := input
		if !strings.HasPrefix(contact, "@") {
			contact = "@" + contact
		}
		s.Draft.Contact = contact
	} else {
		return "Пожалуйста, укажите корректный телефон (+79991234567) или Telegram (@username):"
	}

	s.Step = entity.StepModel
	return "Укажите модель iPhone, которую вы хотите заказать:"
}

func (u *dialogUseCase) stepModel(ctx context.Context, s *entity.Session, input string) string {
	catalog := u.catalog(ctx)
	inputNorm := NormalizeModel(input)

	// Snap free text onto the closest catalog name before matching.
	bestMatch := ""
	bestScore := 0.0
	for _, product := range catalog {
		similarity := jaroSimilarity(inputNorm, NormalizeModel(product.Model))
		if similarity > bestScore {
			bestScore = similarity
			bestMatch = product.Model
		}
	}
	if bestMatch == "" || bestScore < constants.ModelAcceptSimilarity {
		bestMatch = input
	}

	matched := FindMatches(catalog, MatchQuery{Model: bestMatch})
	if len(matched) == 0 {
		if ModelExists(catalog, bestMatch) {
			s.Step = entity.StepOutOfStock
			return fmt.Sprintf("⚠️ Модель '%s' отсутствует в наличии. Хотите оформить заказ на другой телефон? (Да/Нет)", bestMatch)
		}

		allModels := AvailableModels(catalog)
		if similar := SuggestSimilar(input, allModels); len(similar) > 0 {
			var lines []string
			for _, model := range similar {
				lines = append(lines, "- "+model)
			}
			return fmt.Sprintf("Модель '%s' не найдена. Возможно вы имели в виду:\n%s\nПожалуйста, укажите точное название модели.",
				input, strings.Join(lines, "\n"))
		}
		return "Модель не найдена. Доступные модели: " + strings.Join(allModels, ", ")
	}

	s.Draft.Model = matched[0].Model
	s.Step = entity.StepModelConfirmation
	return fmt.Sprintf("Вы имели в виду %s? (Да/Нет)", matched[0].Model)
}

func (u *dialogUseCase) stepModelConfirmation(ctx context.Context, s *entity.Session, input string) string {
	switch {
	case isYes(input):
		s.Step = entity.StepStorage
		storages := AvailableStorages(u.catalog(ctx), s.Draft.Model)
		return fmt.Sprintf("✅ Выбрана модель: %s. Выберите объём памяти: %s",
			s.Draft.Model, strings.Join(storages, ", "))
	case isNo(input):
		s.Draft.Model = ""
		s.Step = entity.StepModel
		return "Хорошо, пожалуйста, укажите точное название модели:"
	default:
		return "Пожалуйста, ответьте Да или Нет для подтверждения модели:"
	}
}

func (u *dialogUseCase) stepOutOfStock(s *entity.Session, input string) string {
	switch {
	case isYes(input):
		s.Draft.ClearProduct()
		s.Step = entity.StepModel
		return "Укажите модель iPhone, которую вы хотите заказать:"
	case isNo(input):
		s.ResetOrder()
		return "Заказ отменён. Чем ещё могу помочь?"
	default:
		return "Пожалуйста, ответьте Да или Нет:"
	}
}

func (u *dialogUseCase) stepStorage(ctx context.Context, s *entity.Session, input string) string {
	catalog := u.catalog(ctx)
	available := AvailableStorages(catalog, s.Draft.Model)

	storageKey := NormalizeStorage(input)
	// An affirmative answer accepts the nearest value offered on the
	// previous turn.
	if s.SuggestedStorage != "" && isYes(input) {
		storageKey = s.SuggestedStorage
	}

	for _, storage := range available {
		if NormalizeStorage(storage) == storageKey {
			s.Draft.Storage = storage
			s.SuggestedStorage = ""
			s.Step = entity.StepColor
			colors := AvailableColors(catalog, s.Draft.Model, storage)
			return fmt.Sprintf("📦 Выбран объём: %s. Выберите цвет: %s",
				storage, strings.Join(colors, ", "))
		}
	}

	if nearest, ok := NearestStorage(input, available); ok {
		s.SuggestedStorage = nearest
		return fmt.Sprintf("Объём недоступен. Ближайший доступный: %s. Выбрать его? (Да/Нет)", nearest)
	}
	return "Объём недоступен. Выберите: " + strings.Join(available, ", ")
}

func (u *dialogUseCase) stepColor(ctx context.Context, s *entity.Session, input string) string {
	catalog := u.catalog(ctx)
	available := AvailableColors(catalog, s.Draft.Model, s.Draft.Storage)

	colorKey := NormalizeColor(input)
	for _, color := range available {
		if NormalizeColor(color) == colorKey {
			// Keep the catalog's own spelling in the order.
			s.Draft.Color = color
			s.Step = entity.StepCharger
			return fmt.Sprintf("🎨 Выбран цвет: %s. Нужен зарядный блок (20W, 2500₽)? Ответьте Да или Нет:", color)
		}
	}
	return "Цвет недоступен. Выберите: " + strings.Join(available, ", ")
}

func (u *dialogUseCase) stepCharger(s *entity.Session, input string) string {
	switch {
	case isYes(input):
		s.Draft.Charger = true
	case isNo(input):
		s.Draft.Charger = false
	default:
		return "Пожалуйста, ответьте Да или Нет на вопрос о зарядном блоке:"
	}

	s.Draft.Delivery = s.DeliveryMethod
	s.Step = entity.StepConfirmation
	return formatOrderSummary(s.Draft) + "\n\nВсё верно? Подтвердите заказ (Да/Нет):"
}

func (u *dialogUseCase) stepConfirmation(ctx context.Context, s *entity.Session, input string) TurnResult {
	switch {
	case isYes(input):
		if err := u.orders.Append(ctx, s.Draft); err != nil {
			log.Printf("Ошибка сохранения заказа: %v", err)
			return TurnResult{Reply: "Ошибка при обработке заказа. Пожалуйста, попробуйте позже."}
		}
		s.Phase = entity.PhaseComplete
		s.Step = entity.StepNone
		s.OrderConfirmed = true
		s.ResetContext = true
		return TurnResult{
			Reply:         "✅ Заказ оформлен! Мы свяжемся с вами для уточнения деталей. Хотите оформить еще один заказ?",
			OrderComplete: true,
		}
	case isNo(input):
		s.Phase = entity.PhaseInit
		s.Step = entity.StepNone
		return TurnResult{Reply: "Хорошо, заказ отменён. Хотите выбрать другую модель или уточнить детали?"}
	default:
		return TurnResult{Reply: "Пожалуйста, ответьте Да или Нет для подтверждения заказа:"}
	}
}

// --- complete ---

func (u *dialogUseCase) handleComplete(ctx context.Context, s *entity.Session, input string) TurnResult {
	lower := strings.ToLower(input)
	for _, kw := range restartKeywords {
		if strings.Contains(lower, kw) {
			s.ResetOrder()
			return TurnResult{Reply: "Хорошо, давайте оформим новый заказ. Какой iPhone вас интересует?"}
		}
	}

	s.Phase = entity.PhaseInit
	return TurnResult{Reply: u.handleInit(ctx, s, input)}
}

// --- helpers ---

func (u *dialogUseCase) catalog(ctx context.Context) []entity.Product {
	products, err := u.products.ListAll(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки каталога: %v", err)
		return nil
	}
	return products
}

// aiReply never propagates a completion failure: the visitor gets the
// fixed apology instead.
func (u *dialogUseCase) aiReply(ctx context.Context, prompt string) string {
	reply, err := u.aiRepo.GenerateReply(ctx, prompt)
	if err != nil {
		log.Printf("Ошибка AI: %v", err)
		return constants.ApologyText
	}
	return reply
}

func formatOrderSummary(d entity.OrderDraft) string {
	var b strings.Builder
	b.WriteString("📝 Ваш заказ:\n")
	fmt.Fprintf(&b, "• Модель: %s\n", d.Model)
	fmt.Fprintf(&b, "• Объём: %s\n", d.Storage)
	fmt.Fprintf(&b, "• Цвет: %s\n", d.Color)
	fmt.Fprintf(&b, "• Зарядный блок: %s\n", d.ChargerLabel())
	fmt.Fprintf(&b, "• Доставка: %s\n", d.Delivery)
	fmt.Fprintf(&b, "• ФИО: %s\n", d.FullName)
	fmt.Fprintf(&b, "• Контакт: %s", d.Contact)
	return b.String()
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "да", "yes", "д":
		return true
	}
	return false
}

func isNo(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "нет", "no", "н":
		return true
	}
	return false
}

func lastMessages(history []entity.Message, n int) []entity.Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// catalogJSON grounds prompts with the current snapshot, truncated so the
// prompt stays small.
func catalogJSON(catalog []entity.Product) string {
	type row struct {
		Model        string `json:"Модель"`
		Storage      string `json:"Объём"`
		Color        string `json:"Цвет"`
		Availability string `json:"Наличие"`
	}
	rows := make([]row, 0, len(catalog))
	for _, p := range catalog {
		rows = append(rows, row(p))
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "[]"
	}
	return truncate(string(data), 1000)
}

func historyJSON(history []entity.Message) string {
	if len(history) == 0 {
		return "Нет"
	}
	data, err := json.Marshal(history)
	if err != nil {
		return "Нет"
	}
	return truncate(string(data), 1000)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
