package visitor

// Visitor walks (key, element) pairs of a container, stopping when the callback returns false or an error
type Visitor[K comparable, E any] func(func(key K, element E) (bool, error)) error
