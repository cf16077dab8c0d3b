package storages

import "errors"

// ErrStorage - общая ошибка хранилища: файл не читается, не пишется или испорчен.
// Конкретные реализации оборачивают в нее исходную причину.
var ErrStorage = errors.New("link storage failure")
