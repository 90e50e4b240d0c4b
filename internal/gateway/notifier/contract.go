//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notifier_test
package notifier

// Producer — отправка одного сообщения в топик. Реализуется обёрткой над
// sarama.SyncProducer.
type Producer interface {
	Send(topic, key string, value []byte) error
}
