package domain

// DISCQuestionnaireID identifies the built-in questionnaire.
const DISCQuestionnaireID = "disc"

// DISCQuestionnaire returns the five-question DISC form.
func DISCQuestionnaire() Questionnaire {
	return Questionnaire{
		ID:    DISCQuestionnaireID,
		Title: "Teste DISC Online",
		Questions: []Question{
			discQuestion("q1", "Quando estou sob pressão, minha tendência é:",
				"Ser assertivo e direto (D)",
				"Ser comunicativo e otimista (I)",
				"Ser paciente e calmo (S)",
				"Ser detalhista e analítico (C)"),
			discQuestion("q2", "Em situações sociais, eu geralmente sou:",
				"Líder e dominante (D)",
				"Extrovertido e persuasivo (I)",
				"Agradável e compreensivo (S)",
				"Reservado e meticuloso (C)"),
			discQuestion("q3", "Prefiro trabalhar em um ambiente que seja:",
				"Competitivo e desafiador (D)",
				"Interativo e dinâmico (I)",
				"Estável e previsível (S)",
				"Estruturado e organizado (C)"),
			discQuestion("q4", "Meu estilo de tomada de decisão é mais:",
				"Rápido e firme (D)",
				"Baseado em intuição e pessoas (I)",
				"Cauteloso e harmonioso (S)",
				"Lógico e baseado em dados (C)"),
			discQuestion("q5", "Quando enfrento desafios, minha primeira reação é:",
				"Enfrentá-los de frente e com força (D)",
				"Motivar e influenciar os outros (I)",
				"Buscar consenso e apoio (S)",
				"Analisar todas as opções antes de agir (C)"),
		},
	}
}

// discQuestion builds a question whose options follow D, I, S, C order.
func discQuestion(id, prompt, d, i, s, c string) Question {
	return Question{
		ID:     id,
		Prompt: prompt,
		Options: []Option{
			{ID: id + "-d", Label: d, Letter: LetterD},
			{ID: id + "-i", Label: i, Letter: LetterI},
			{ID: id + "-s", Label: s, Letter: LetterS},
			{ID: id + "-c", Label: c, Letter: LetterC},
		},
	}
}
