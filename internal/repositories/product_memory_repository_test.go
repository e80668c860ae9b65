package repositories_test

import (
	"sync"
	"testing"

	"catalogue/internal/models"
	"catalogue/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInMemoryProductRepository_SaveAssignsIncreasingIDs(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	keyboard := &models.Product{Title: "Keyboard", Details: strPtr("Mechanical")}
	mouse := &models.Product{Title: "Mouse"}

	require.NoError(t, repo.Save(keyboard))
	require.NoError(t, repo.Save(mouse))

	assert.Equal(t, 1, keyboard.ID)
	assert.Equal(t, 2, mouse.ID)
}

func TestInMemoryProductRepository_SaveIgnoresClientID(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	product := &models.Product{ID: 42, Title: "Monitor"}
	require.NoError(t, repo.Save(product))

	assert.Equal(t, 1, product.ID)
	_, err := repo.FindByID(42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestInMemoryProductRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	for _, title := range []string{"Laptop", "Keyboard", "Mouse"} {
		require.NoError(t, repo.Save(&models.Product{Title: title}))
	}

	products, err = repo.FindAll()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Laptop", products[0].Title)
	assert.Equal(t, "Keyboard", products[1].Title)
	assert.Equal(t, "Mouse", products[2].Title)
}

func TestInMemoryProductRepository_FindAllReturnsSnapshot(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	require.NoError(t, repo.Save(&models.Product{Title: "Laptop", Details: strPtr("15 inch")}))

	products, err := repo.FindAll()
	require.NoError(t, err)
	products[0].Title = "Changed"
	*products[0].Details = "Changed"

	require.NoError(t, repo.Save(&models.Product{Title: "Mouse"}))

	stored, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", stored.Title)
	assert.Equal(t, "15 inch", *stored.Details)
	assert.Len(t, products, 1)
}

func TestInMemoryProductRepository_SaveDoesNotAliasCaller(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	product := &models.Product{Title: "Laptop"}
	require.NoError(t, repo.Save(product))
	product.Title = "Changed after save"

	stored, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", stored.Title)
}

func TestInMemoryProductRepository_FindByID(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	require.NoError(t, repo.Save(&models.Product{Title: "Keyboard", Details: strPtr("Mechanical")}))

	t.Run("existing product", func(t *testing.T) {
		product, err := repo.FindByID(1)
		require.NoError(t, err)
		assert.Equal(t, "Keyboard", product.Title)
		assert.Equal(t, "Mechanical", *product.Details)
	})

	t.Run("non-existent product", func(t *testing.T) {
		product, err := repo.FindByID(99)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestInMemoryProductRepository_Update(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	require.NoError(t, repo.Save(&models.Product{Title: "Keyboard", Details: strPtr("Mechanical")}))

	err := repo.Update(&models.Product{ID: 1, Title: "Keyboard Pro"})
	require.NoError(t, err)

	product, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard Pro", product.Title)
	assert.Nil(t, product.Details)

	err = repo.Update(&models.Product{ID: 99, Title: "Ghost"})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestInMemoryProductRepository_DeleteByID(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	for _, title := range []string{"Laptop", "Keyboard", "Mouse"} {
		require.NoError(t, repo.Save(&models.Product{Title: title}))
	}

	t.Run("missing id is a no-op", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(99))
		products, err := repo.FindAll()
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("existing id removes exactly one product", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(2))

		products, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, 1, products[0].ID)
		assert.Equal(t, 3, products[1].ID)

		_, err = repo.FindByID(2)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestInMemoryProductRepository_DeletedIDsAreNotReused(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	require.NoError(t, repo.Save(&models.Product{Title: "Laptop"}))
	require.NoError(t, repo.Save(&models.Product{Title: "Keyboard"}))

	require.NoError(t, repo.DeleteByID(2))

	mouse := &models.Product{Title: "Mouse"}
	require.NoError(t, repo.Save(mouse))
	assert.Equal(t, 3, mouse.ID)
}

func TestInMemoryProductRepository_ConcurrentSavesGetDistinctIDs(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()

	const workers = 64
	ids := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			product := &models.Product{Title: "Concurrent"}
			if err := repo.Save(product); err == nil {
				ids[i] = product.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, workers)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		assert.Positive(t, id)
		seen[id] = true
	}

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, products, workers)
	for i := 1; i < len(products); i++ {
		assert.Less(t, products[i-1].ID, products[i].ID)
	}
}

func TestInMemoryProductRepository_RejectsNil(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository()
	assert.Error(t, repo.Save(nil))
	assert.Error(t, repo.Update(nil))
}
