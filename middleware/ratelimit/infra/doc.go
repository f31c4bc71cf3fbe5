// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - WindowStore: janela deslizante por chave (log de timestamps) com relógio injetável
//   - NewSlotPool: semáforo simples para limite de concorrência
//   - MemoryStatsStore / RedisStatsStore: contadores de decisões
package infra
