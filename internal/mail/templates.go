package mail

import "fmt"

// Message is a rendered notification ready for a Sender.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

func NewRegistrationAlert(email, userID string) Message {
	return Message{
		Subject: fmt.Sprintf("Nova solicitação de cadastro de criador: %s", email),
		Text: fmt.Sprintf(
			"Um novo criador se cadastrou no ateliê.\n\nE-mail: %s\nID: %s\n\nRevise e aprove o cadastro no painel de administração.",
			email, userID),
		HTML: fmt.Sprintf(
			"<p>Um novo criador se cadastrou no ateliê.</p><ul><li><strong>E-mail:</strong> %s</li><li><strong>ID:</strong> %s</li></ul><p>Revise e aprove o cadastro no painel de administração.</p>",
			email, userID),
	}
}

func NewApplicationAlert(name, email, phone, message, imageURL string) Message {
	imageLine := "Nenhuma imagem anexada."
	imageHTML := "<li>Nenhuma imagem anexada.</li>"
	if imageURL != "" {
		imageLine = fmt.Sprintf("Imagem: %s", imageURL)
		imageHTML = fmt.Sprintf(`<li><strong>Imagem:</strong> <a href="%s">ver</a></li>`, imageURL)
	}
	return Message{
		Subject: fmt.Sprintf("Nova aplicação de criador: %s", name),
		Text: fmt.Sprintf(
			"Nova aplicação pelo formulário Faça Parte.\n\nNome: %s\nE-mail: %s\nTelefone: %s\nMensagem: %s\n%s",
			name, email, phone, message, imageLine),
		HTML: fmt.Sprintf(
			"<p>Nova aplicação pelo formulário Faça Parte.</p><ul><li><strong>Nome:</strong> %s</li><li><strong>E-mail:</strong> %s</li><li><strong>Telefone:</strong> %s</li><li><strong>Mensagem:</strong> %s</li>%s</ul>",
			name, email, phone, message, imageHTML),
	}
}

func ApprovalWithCredentials(email, tempPassword, creatorSpaceURL string) Message {
	return Message{
		Subject: "Sua conta no ateliê foi aprovada!",
		Text: fmt.Sprintf(
			"Olá %s,\n\nSua aplicação foi aprovada. Suas credenciais temporárias:\n\nE-mail: %s\nSenha: %s\n\nPor segurança, você deverá trocar esta senha no primeiro login.\nAcesse: %s",
			email, email, tempPassword, creatorSpaceURL),
		HTML: fmt.Sprintf(
			"<p>Olá <strong>%s</strong>,</p><p>Sua aplicação foi <strong>aprovada</strong>. Suas credenciais temporárias:</p><ul><li><strong>E-mail:</strong> %s</li><li><strong>Senha:</strong> <code>%s</code></li></ul><p>Por segurança, você deverá trocar esta senha no primeiro login.</p><p><a href=\"%s\">Acessar o Espaço do Criador</a></p>",
			email, email, tempPassword, creatorSpaceURL),
	}
}

func ApprovalConfirmation(email string) Message {
	return Message{
		Subject: "Sua aplicação foi aprovada",
		Text:    fmt.Sprintf("Olá %s,\n\nSua aplicação foi aprovada. Sua conta já estava ativa e suas credenciais permanecem as mesmas.", email),
		HTML:    fmt.Sprintf("<p>Olá <strong>%s</strong>,</p><p>Sua aplicação foi aprovada. Sua conta já estava ativa e suas credenciais permanecem as mesmas.</p>", email),
	}
}

func Rejection(email, reason string) Message {
	if reason == "" {
		reason = "Não especificado"
	}
	return Message{
		Subject: "Status da sua aplicação ao ateliê",
		Text:    fmt.Sprintf("Olá %s,\n\nInfelizmente sua aplicação foi rejeitada.\nMotivo: %s", email, reason),
		HTML:    fmt.Sprintf("<p>Olá <strong>%s</strong>,</p><p>Infelizmente sua aplicação foi <strong>rejeitada</strong>.</p><p><strong>Motivo:</strong> %s</p>", email, reason),
	}
}

func ResetLink(email, resetURL string) Message {
	return Message{
		Subject: "Redefinição de senha",
		Text: fmt.Sprintf(
			"Olá %s,\n\nRecebemos um pedido para redefinir sua senha. O link abaixo vale por 1 hora:\n\n%s\n\nSe você não pediu a redefinição, ignore este e-mail.",
			email, resetURL),
		HTML: fmt.Sprintf(
			"<p>Olá <strong>%s</strong>,</p><p>Recebemos um pedido para redefinir sua senha. O link abaixo vale por 1 hora:</p><p><a href=\"%s\">Redefinir senha</a></p><p>Se você não pediu a redefinição, ignore este e-mail.</p>",
			email, resetURL),
	}
}

func ResetConfirmation(email string) Message {
	return Message{
		Subject: "Sua senha foi alterada",
		Text:    fmt.Sprintf("Olá %s,\n\nSua senha foi redefinida com sucesso. Se não foi você, entre em contato com a equipe imediatamente.", email),
		HTML:    fmt.Sprintf("<p>Olá <strong>%s</strong>,</p><p>Sua senha foi redefinida com sucesso. Se não foi você, entre em contato com a equipe imediatamente.</p>", email),
	}
}

func ContactRelay(name, email, phone, message, productName string) Message {
	productLine := ""
	productHTML := ""
	if productName != "" {
		productLine = fmt.Sprintf("\nProduto: %s", productName)
		productHTML = fmt.Sprintf("<li><strong>Produto:</strong> %s</li>", productName)
	}
	return Message{
		Subject: fmt.Sprintf("Novo contato pelo site: %s", name),
		Text: fmt.Sprintf(
			"Nova mensagem pelo formulário de contato.\n\nNome: %s\nE-mail: %s\nTelefone: %s%s\nMensagem: %s",
			name, email, phone, productLine, message),
		HTML: fmt.Sprintf(
			"<p>Nova mensagem pelo formulário de contato.</p><ul><li><strong>Nome:</strong> %s</li><li><strong>E-mail:</strong> %s</li><li><strong>Telefone:</strong> %s</li>%s<li><strong>Mensagem:</strong> %s</li></ul>",
			name, email, phone, productHTML, message),
	}
}
