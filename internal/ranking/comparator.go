package ranking

// candidate - участник розыгрыша бейджа. Правило разрешения ничьих
// определено в одном месте, чтобы все три бейджа разыгрывались одинаково.
type candidate struct {
	score     float64 // основная метрика, больше - лучше
	secondary float64 // вторичная метрика при равном score, больше - лучше
	name      string  // имя поставщика, по возрастанию
	id        string  // идентификатор поставщика или предложения, по возрастанию
}

// better возвращает true, если кандидат a должен получить бейдж вместо b.
func better(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.secondary != b.secondary {
		return a.secondary > b.secondary
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.id < b.id
}
