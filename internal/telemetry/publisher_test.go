package telemetry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"

	"viabilidade/internal/coords"
)

type memWriter struct {
	messages []kafka.Message
}

func (m *memWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *memWriter) Close() error { return nil }

func TestPublicarVerificacao(t *testing.T) {
	writer := &memWriter{}
	pub := NewPublisherWithWriter(writer)

	pub.PublicarVerificacao(context.Background(), "viable", 230.5)
	pub.PublicarRotaDegradada(context.Background(), coords.GeoPoint{Lat: -22.9, Lon: -42.8})

	if len(writer.messages) != 2 {
		t.Fatalf("%d mensagens publicadas, esperava 2", len(writer.messages))
	}

	var evento VerificacaoEvent
	if err := json.Unmarshal(writer.messages[0].Value, &evento); err != nil {
		t.Fatal(err)
	}
	if evento.Evento != "verificacao_concluida" || evento.Status != "viable" || evento.Metros != 230.5 {
		t.Errorf("evento = %+v", evento)
	}

	if err := json.Unmarshal(writer.messages[1].Value, &evento); err != nil {
		t.Fatal(err)
	}
	if evento.Evento != "rota_degradada" || evento.Lat != -22.9 {
		t.Errorf("evento = %+v", evento)
	}
}

func TestPublisherSemBroker(t *testing.T) {
	pub := NewPublisher("", "")
	// Sem broker configurado as chamadas não podem quebrar.
	pub.PublicarVerificacao(context.Background(), "viable", 1)
	if err := pub.Close(); err != nil {
		t.Fatal(err)
	}
}
