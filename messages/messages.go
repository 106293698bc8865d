// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package messages

// Error codes shared with the web client. Stable strings; the client keys
// its own copy of the catalogue on them.
const (
	CodeInvalidCredential  = "auth/invalid-credential"
	CodeUserNotFound       = "auth/user-not-found"
	CodeWrongPassword      = "auth/wrong-password"
	CodeTooManyRequests    = "auth/too-many-requests"
	CodeUserDisabled       = "auth/user-disabled"
	CodeAccountExists      = "auth/account-exists-with-different-credential"
	CodeEmailWithGoogle    = "auth/email-registered-with-google"
	CodeEmailTaken         = "auth/email-already-in-use"
	CodeInvalidGoogleToken = "auth/invalid-google-token"
	CodeSessionExpired     = "auth/session-expired"
	CodeAlreadyVoted       = "vote/already-voted"
	CodePollNotActive      = "vote/poll-not-active"
	CodeCandidateNotInPoll = "vote/candidate-not-in-poll"
	CodeNotVoter           = "vote/not-a-voter"
	CodePollNotFound       = "poll/not-found"
	CodeCandidateNotFound  = "candidate/not-found"
	CodeInvalidDateRange   = "poll/invalid-date-range"
	CodeValidation         = "request/validation"
	CodeInternal           = "internal"
)

// catalogue maps error codes to the pt-BR messages shown by the UI.
var catalogue = map[string]string{
	CodeInvalidCredential:  "Credenciais inválidas. Verifique seu e-mail e senha e tente novamente. Se você se cadastrou com Google, tente fazer login com Google.",
	CodeUserNotFound:       "Usuário não encontrado. Verifique seu e-mail ou cadastre-se.",
	CodeWrongPassword:      "Senha incorreta. Tente novamente ou clique em 'Esqueceu a senha?'.",
	CodeTooManyRequests:    "Muitas tentativas de login malsucedidas. Tente novamente mais tarde ou redefina sua senha.",
	CodeUserDisabled:       "Esta conta foi desativada. Entre em contato com o suporte para obter ajuda.",
	CodeAccountExists:      "Já existe uma conta com este e-mail. Digite sua senha para vincular sua conta do Google à conta existente.",
	CodeEmailWithGoogle:    "Este e-mail já está registrado com o Google. Por favor, faça login com Google.",
	CodeEmailTaken:         "Este e-mail já está cadastrado. Faça login ou recupere sua senha.",
	CodeInvalidGoogleToken: "Não foi possível validar o login com Google. Tente novamente.",
	CodeSessionExpired:     "Sua sessão expirou. Faça login novamente.",
	CodeAlreadyVoted:       "Você já votou nesta pesquisa.",
	CodePollNotActive:      "Esta pesquisa não está aberta para votação.",
	CodeCandidateNotInPoll: "Este candidato não participa desta pesquisa.",
	CodeNotVoter:           "Contas de visitante não podem votar. Cadastre-se para participar.",
	CodePollNotFound:       "Pesquisa não encontrada.",
	CodeCandidateNotFound:  "Candidato não encontrado.",
	CodeInvalidDateRange:   "A data de início deve ser anterior à data de término.",
	CodeValidation:         "Verifique os campos informados e tente novamente.",
}

const fallback = "Ocorreu um erro. Por favor, tente novamente."

// Lookup returns the localized message for a code, falling back to a
// generic message for unknown codes.
func Lookup(code string) string {
	if msg, ok := catalogue[code]; ok {
		return msg
	}
	return fallback
}
