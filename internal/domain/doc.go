// Package domain содержит доменные модели Kadr.
//
// Основные сущности:
//   - Node     — узел медиа-пайплайна (источник, трансформация, потребитель)
//   - Edge     — направленное ребро между портами узлов
//   - Pipeline — полный граф {nodes, edges}
//   - Run      — экземпляр выполнения пайплайна внешним движком
//
// Модели не содержат бизнес-логики работы с графом —
// она живёт в internal/graph и internal/orchestrator.
package domain
