package topics

const (
	// Eventos de feed (bets criadas, convites criados)
	FeedEvents = "feed_events"
)
