package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viabilidade_cache_hits_total",
		Help: "Acertos de cache por categoria.",
	}, []string{"categoria"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viabilidade_cache_misses_total",
		Help: "Falhas de cache por categoria.",
	}, []string{"categoria"})

	APICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viabilidade_api_calls_total",
		Help: "Chamadas a serviços externos por provedor.",
	}, []string{"provedor"})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viabilidade_errors_total",
		Help: "Erros por operação.",
	}, []string{"operacao"})

	RotasDegradadas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "viabilidade_rotas_degradadas_total",
		Help: "Verificações que caíram para linha reta por falta de geometria de rota.",
	})

	VerificacoesPorStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viabilidade_verificacoes_total",
		Help: "Verificações concluídas por status final.",
	}, []string{"status"})
)
