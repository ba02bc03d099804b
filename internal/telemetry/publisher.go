package telemetry

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"viabilidade/internal/coords"
)

// KafkaWriter é o que o publicador precisa do kafka-go; nos testes entra
// um gravador em memória.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type VerificacaoEvent struct {
	Evento   string    `json:"evento"`
	Status   string    `json:"status,omitempty"`
	Metros   float64   `json:"metros,omitempty"`
	Lat      float64   `json:"lat,omitempty"`
	Lon      float64   `json:"lon,omitempty"`
	Ocorrido time.Time `json:"ocorrido_em"`
}

// Publisher emite eventos de verificação para o tópico configurado. Sem
// broker configurado ele vira um no-op.
type Publisher struct {
	writer KafkaWriter
}

func NewPublisher(broker, topic string) *Publisher {
	if broker == "" || topic == "" {
		log.Println("KAFKA_BROKER não configurado, telemetria desativada")
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func NewPublisherWithWriter(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) PublicarVerificacao(ctx context.Context, status string, metros float64) {
	p.publicar(ctx, VerificacaoEvent{
		Evento:   "verificacao_concluida",
		Status:   status,
		Metros:   metros,
		Ocorrido: time.Now(),
	})
}

func (p *Publisher) PublicarRotaDegradada(ctx context.Context, ponto coords.GeoPoint) {
	p.publicar(ctx, VerificacaoEvent{
		Evento:   "rota_degradada",
		Lat:      ponto.Lat,
		Lon:      ponto.Lon,
		Ocorrido: time.Now(),
	})
}

func (p *Publisher) publicar(ctx context.Context, event VerificacaoEvent) {
	if p.writer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("erro ao serializar evento de telemetria: %v", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Evento),
		Value: payload,
	}); err != nil {
		log.Printf("erro ao publicar evento de telemetria: %v", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
