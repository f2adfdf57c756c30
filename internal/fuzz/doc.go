// Package fuzztests houses Go fuzz harnesses for the lint pipeline
// (preprocess -> detect -> lexer -> parser). Its goal is to guard against
// panics, hangs and broken span invariants on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через lint.Parse и лексеры
// диалектов и проверять инварианты позиций.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
