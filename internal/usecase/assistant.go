package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bank-assistant/internal/domain"
	"bank-assistant/internal/repository"
)

const defaultMaxMessage = 500

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type AccountReader interface {
	GetAccount(ctx context.Context, number string) (domain.Account, error)
}

// Assistant answers widget messages with canned banking replies.
type Assistant struct {
	params        ParamGetter
	accounts      AccountReader
	paramPrefix   string
	maxMessageLen int

	cacheMu     sync.RWMutex
	cacheLoaded bool
	profile     bankProfile
}

type ReplyInput struct {
	Message string
	Context domain.ConversationContext
}

type ReplyOutput struct {
	Response     string
	Farewell     bool
	QuickReplies []string
	// Account is the account the turn resolved to, empty if none.
	Account string
	Intent  Intent
}

func NewAssistant(p ParamGetter, accounts AccountReader, paramPrefix string, maxMessageLen int) (*Assistant, error) {
	if p == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if accounts == nil {
		return nil, errors.New("usecase: account reader must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessage
	}
	return &Assistant{
		params:        p,
		accounts:      accounts,
		paramPrefix:   paramPrefix,
		maxMessageLen: maxMessageLen,
	}, nil
}

func (a *Assistant) Reply(ctx context.Context, in ReplyInput) (ReplyOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ReplyOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if len(message) > a.maxMessageLen {
		return ReplyOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}
	if err := a.ensureProfile(ctx); err != nil {
		return ReplyOutput{}, newError(ErrorUpstream, "ssm_load_error", err)
	}
	profile := a.bankProfile()

	message = strings.ToLower(message)
	intent := DetectIntent(message)

	switch intent {
	case IntentGreeting:
		return ReplyOutput{
			Response:     greetingText(profile),
			QuickReplies: quickRepliesFor(intent, ""),
			Intent:       intent,
		}, nil
	case IntentFarewell:
		return ReplyOutput{Response: farewellText(profile), Farewell: true, Intent: intent}, nil
	}

	account := accountFromMessage(message)
	if account == "" {
		account = in.Context.CurrentAccount
	}

	var response string
	switch intent {
	case IntentBalance, IntentTransactions, IntentCard, IntentLoan:
		text, err := a.accountReply(ctx, intent, account)
		if err != nil {
			return ReplyOutput{}, err
		}
		response = text
	case IntentTransfer:
		response = transferText
	case IntentExchange:
		response = exchangeText()
	case IntentBranch:
		response = branchesText()
	case IntentSupport:
		response = supportText(profile)
	default:
		response = unknownText
	}

	return ReplyOutput{
		Response:     response,
		QuickReplies: quickRepliesFor(intent, account),
		Account:      account,
		Intent:       intent,
	}, nil
}

// ChatReply converts the output to the /chat wire shape. Greetings and
// farewells carry no context echo.
func (o ReplyOutput) ChatReply() domain.ChatReply {
	reply := domain.ChatReply{
		Response:     o.Response,
		Farewell:     o.Farewell,
		QuickReplies: o.QuickReplies,
	}
	if o.Intent != IntentGreeting && o.Intent != IntentFarewell {
		rc := &domain.ReplyContext{}
		if o.Account != "" {
			account := o.Account
			rc.Account = &account
		}
		reply.Context = rc
	}
	return reply
}

func (a *Assistant) accountReply(ctx context.Context, intent Intent, number string) (string, error) {
	if number == "" {
		return missingAccountText(intent), nil
	}
	acct, err := a.accounts.GetAccount(ctx, number)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return accountNotFoundText, nil
	}
	if err != nil {
		return "", newError(ErrorInternal, "account_lookup_error", err)
	}

	switch intent {
	case IntentBalance:
		return balanceText(acct), nil
	case IntentTransactions:
		return transactionsText(acct), nil
	case IntentCard:
		return cardText(acct), nil
	default:
		return loansText(acct), nil
	}
}

func (a *Assistant) bankProfile() bankProfile {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	return a.profile
}

func (a *Assistant) ensureProfile(ctx context.Context) error {
	a.cacheMu.RLock()
	if a.cacheLoaded {
		a.cacheMu.RUnlock()
		return nil
	}
	a.cacheMu.RUnlock()

	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()
	if a.cacheLoaded {
		return nil
	}

	profile, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}
	a.profile = profile
	a.cacheLoaded = true
	return nil
}

func (a *Assistant) loadProfile(ctx context.Context) (bankProfile, error) {
	var (
		p   bankProfile
		err error
	)
	p.name, err = a.params.GetParameter(ctx, a.paramPrefix+"/bank_name")
	if err != nil {
		return bankProfile{}, fmt.Errorf("usecase: load bank name: %w", err)
	}
	p.supportPhone, err = a.params.GetParameter(ctx, a.paramPrefix+"/support_phone")
	if err != nil {
		return bankProfile{}, fmt.Errorf("usecase: load support phone: %w", err)
	}
	p.supportEmail, err = a.params.GetParameter(ctx, a.paramPrefix+"/support_email")
	if err != nil {
		return bankProfile{}, fmt.Errorf("usecase: load support email: %w", err)
	}
	return p, nil
}
