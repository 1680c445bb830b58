// Package lox holds the few collection helpers samber/lo lacks.
package lox

func Map[T, R any](collection []T, iteratee func(item T) R) []R {
	result := make([]R, len(collection))

	for i, item := range collection {
		result[i] = iteratee(item)
	}

	return result
}

func MapErr[T any, R any](collection []T, iteratee func(item T) (R, error)) ([]R, error) {
	var err error

	result := make([]R, len(collection))

	for i, item := range collection {
		result[i], err = iteratee(item)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func SumBy[T any](collection []T, iteratee func(item T) int64) int64 {
	var sum int64

	for _, item := range collection {
		sum += iteratee(item)
	}

	return sum
}
