// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> checker -> emitter). The goal is to smoke
// test robustness: no panics, no hangs, well-formed trees on any input.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
