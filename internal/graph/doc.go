// Package graph содержит ядро работы с графом пайплайна.
//
// Структура:
//   - store.go     — хранилище графа, единая точка сериализации мутаций
//   - validator.go — проверка допустимости соединения (таблица совместимости)
//   - lifecycle.go — жизненный цикл рёбер: замена занятого порта, cleanup при удалении
//   - resolve.go   — рекурсивное разрешение значений через цепочки узлов
//   - propagate.go — полный перерасчёт данных узлов после каждой мутации
//
// Распространение пересчитывает весь граф заново, а не инкрементально —
// это осознанный размен производительности на корректность.
package graph
